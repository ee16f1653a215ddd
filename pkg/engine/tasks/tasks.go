// Package tasks runs short-lived cosmetic animations driven by simulation time.
package tasks

import (
	"log"
	"math"
)

// Step receives the task progress in the 0..1 range.
type Step func(progress float64)

// Task describes one cosmetic animation.
type Task struct {
	Name     string
	Duration float64 // seconds; zero or less completes on the first tick
	Step     Step
	Done     func()
}

// Token lets the spawner cancel a task before it completes.
type Token struct {
	cancelled bool
}

// Cancel stops the task before its next step.
func (t *Token) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (t *Token) Cancelled() bool {
	return t.cancelled
}

type running struct {
	task  Task
	spent float64
	token *Token
}

// Runner owns the in-flight tasks of one realm.
type Runner struct {
	tasks []*running
}

// Spawn schedules t and returns its cancellation token.
func (r *Runner) Spawn(t Task) *Token {
	tok := &Token{}
	r.tasks = append(r.tasks, &running{task: t, token: tok})
	return tok
}

// Tick advances every task by dt seconds and drops finished or cancelled ones.
func (r *Runner) Tick(dt float64) {
	if len(r.tasks) == 0 {
		return
	}
	kept := r.tasks[:0]
	for _, rt := range r.tasks {
		if rt.token.cancelled {
			continue
		}
		rt.spent += dt
		progress := 1.0
		if rt.task.Duration > 0 {
			progress = math.Min(rt.spent/rt.task.Duration, 1)
		}
		if !r.step(rt, progress) {
			continue
		}
		if progress >= 1 {
			if rt.task.Done != nil {
				rt.task.Done()
			}
			continue
		}
		kept = append(kept, rt)
	}
	for i := len(kept); i < len(r.tasks); i++ {
		r.tasks[i] = nil
	}
	r.tasks = kept
}

// step runs one step and reports false if it panicked.
func (r *Runner) step(rt *running, progress float64) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Cosmetic task %q failed: %v", rt.task.Name, rec)
			ok = false
		}
	}()
	if rt.task.Step != nil {
		rt.task.Step(progress)
	}
	return true
}

// Len returns the number of in-flight tasks.
func (r *Runner) Len() int {
	return len(r.tasks)
}

// CancelAll cancels and drops every in-flight task.
func (r *Runner) CancelAll() {
	for _, rt := range r.tasks {
		rt.token.Cancel()
	}
	r.tasks = nil
}
