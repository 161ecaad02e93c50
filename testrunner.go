package carousel

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action  string  `json:"action"`
	Pointer string  `json:"pointer,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	DeltaY  float64 `json:"deltaY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Index   int     `json:"index,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON gesture script across frames, for scripted
// demos and tests. Attach it with Engine.SetScriptRunner.
//
// Actions: press, move, release, cancel, click, drag, wheel, wait, open,
// close.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "press", "move", "release", "cancel", "click", "drag", "wheel", "wait", "open", "close":
		return true
	}
	return false
}

// SetScriptRunner attaches a runner. Its step runs at the start of every
// Update, before queued input is consumed.
func (e *Engine) SetScriptRunner(r *ScriptRunner) {
	e.script = r
}

// Done reports whether every step has executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Let queued injections drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	typ := ParsePointerType(st.Pointer)

	switch st.Action {
	case "press":
		e.InjectPress(st.X, st.Y, typ)
	case "move":
		e.InjectMove(st.X, st.Y, typ)
	case "release":
		e.InjectRelease(st.X, st.Y, typ)
	case "cancel":
		e.InjectCancel(typ)
	case "click":
		e.InjectClick(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, typ)
	case "wheel":
		e.InjectWheel(st.DeltaY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "open":
		e.OpenItem(st.Index)
	case "close":
		e.CloseItem()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
