// Package wizard sequences the check-in steps and owns the form state.
// The controller is single-threaded: callers run one transition at a time.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/step"
)

var (
	// ErrAtFirstStep is returned by GoBack on basic-info.
	ErrAtFirstStep = errors.New("already at the first step")
	// ErrAtLastStep is returned by GoNext on review; submission leaves the wizard instead.
	ErrAtLastStep = errors.New("review is the last step; submit instead")
)

// StepBlockedError is returned when the current step's guard refuses to advance.
type StepBlockedError struct {
	Step   step.Step
	Reason string
}

func (e *StepBlockedError) Error() string {
	return fmt.Sprintf("cannot leave %s: %s", e.Step, e.Reason)
}

// Controller is the wizard state machine.
type Controller struct {
	now     func() time.Time
	counts  catalog.Counts
	current step.Step
	state   form.State

	// finishedBeforeReview is FinishedAt as it was when review was last
	// entered; GoBack from review puts it back.
	finishedBeforeReview *time.Time
}

// New starts a wizard at basic-info with a fresh form stamped now().
func New(now func() time.Time, counts catalog.Counts) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{
		now:     now,
		counts:  counts,
		current: step.First(),
		state:   form.New(now()),
	}
}

// Current returns the step on screen.
func (c *Controller) Current() step.Step { return c.current }

// State returns a copy of the form state.
func (c *Controller) State() form.State { return c.state.Clone() }

// Counts returns the catalog sizes the guards are evaluated against.
func (c *Controller) Counts() catalog.Counts { return c.counts }

// Update merges p into the form. Material lists in p have their per-unit
// totals recomputed in the same update.
func (c *Controller) Update(p form.Patch) {
	c.state = form.ApplyPatch(c.state, form.WithDerivedTotals(p))
}

// Check evaluates the guard for the current step.
func (c *Controller) Check() step.GuardResult {
	return c.CheckStep(c.current)
}

// CheckStep evaluates the guard for any step against the current form.
func (c *Controller) CheckStep(s step.Step) step.GuardResult {
	return step.CanComplete(s, step.Context{State: c.state, Counts: c.counts})
}

// GoNext advances one step if the current step is complete. Entering review
// stamps FinishedAt: it measures time spent filling the form, not submission time.
func (c *Controller) GoNext() error {
	next, ok := c.current.Next()
	if !ok {
		return ErrAtLastStep
	}
	if r := c.Check(); !r.Allowed {
		return &StepBlockedError{Step: c.current, Reason: r.Reason}
	}
	if next == step.Review {
		c.finishedBeforeReview = c.state.FinishedAt
		finished := c.now()
		c.state = form.ApplyPatch(c.state, form.Patch{FinishedAt: form.Ptr(&finished)})
	}
	c.current = next
	return nil
}

// GoBack moves to the previous step. Entered data is kept. Leaving review
// restores FinishedAt to what it was before review was entered, so a
// GoNext/GoBack pair leaves the form unchanged.
func (c *Controller) GoBack() error {
	prev, ok := c.current.Prev()
	if !ok {
		return ErrAtFirstStep
	}
	if c.current == step.Review {
		c.state = form.ApplyPatch(c.state, form.Patch{FinishedAt: form.Ptr(c.finishedBeforeReview)})
	}
	c.current = prev
	return nil
}

// GoToStep jumps straight to target without evaluating any guard. It backs
// the review screen's per-section edit. A jump does not stamp FinishedAt and
// does not make the form complete: landing on review this way leaves earlier
// steps unchecked, so callers about to submit must run Validate.
func (c *Controller) GoToStep(target step.Step) error {
	if target.Index() < 0 {
		return fmt.Errorf("unknown step %q", target)
	}
	if target == step.Review && c.current != step.Review {
		c.finishedBeforeReview = c.state.FinishedAt
	}
	c.current = target
	return nil
}

// Validate checks every step before review in order and returns a
// *StepBlockedError for the first one whose guard refuses.
func (c *Controller) Validate() error {
	for _, s := range step.Sequence() {
		if s == step.Review {
			break
		}
		if r := c.CheckStep(s); !r.Allowed {
			return &StepBlockedError{Step: s, Reason: r.Reason}
		}
	}
	return nil
}

// Reset discards the form and starts over at basic-info.
func (c *Controller) Reset() {
	c.current = step.First()
	c.state = form.New(c.now())
	c.finishedBeforeReview = nil
}
