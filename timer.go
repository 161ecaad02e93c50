package carousel

import "time"

type scheduledTask struct {
	id uint64
	at time.Time
	fn func()
}

// scheduler holds deferred actions against wall-clock deadlines. Tasks run
// on the frame thread when run is called with a time at or past their
// deadline; nothing fires in the background.
type scheduler struct {
	tasks  []scheduledTask
	nextID uint64
}

// TimerHandle refers to a scheduled action. The zero value is an inert
// handle whose Cancel is a no-op.
type TimerHandle struct {
	id uint64
	s  *scheduler
}

// Cancel removes the action if it has not fired yet. It reports whether a
// pending action was removed.
func (h TimerHandle) Cancel() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	for i := range h.s.tasks {
		if h.s.tasks[i].id == h.id {
			h.s.tasks = append(h.s.tasks[:i], h.s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether the action is still waiting to fire.
func (h TimerHandle) Pending() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	for i := range h.s.tasks {
		if h.s.tasks[i].id == h.id {
			return true
		}
	}
	return false
}

func (s *scheduler) after(now time.Time, d time.Duration, fn func()) TimerHandle {
	s.nextID++
	s.tasks = append(s.tasks, scheduledTask{id: s.nextID, at: now.Add(d), fn: fn})
	return TimerHandle{id: s.nextID, s: s}
}

// run fires every task due at now in deadline order and returns how many
// fired. A task may schedule or cancel others; those changes are honoured.
func (s *scheduler) run(now time.Time) int {
	fired := 0
	for {
		idx := -1
		for i := range s.tasks {
			if s.tasks[i].at.After(now) {
				continue
			}
			if idx < 0 || s.tasks[i].at.Before(s.tasks[idx].at) {
				idx = i
			}
		}
		if idx < 0 {
			return fired
		}
		task := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		task.fn()
		fired++
	}
}
