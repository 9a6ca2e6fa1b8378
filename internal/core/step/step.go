// Package step defines the wizard's ordered steps and the guard that decides
// whether each one is complete.
// Guards are pure functions that evaluate preconditions without side effects.
package step

import "fmt"

// Step identifies one screen of the check-in wizard.
type Step string

const (
	BasicInfo       Step = "basic-info"
	Categories      Step = "categories"
	ValueScrap      Step = "value-scrap"
	ChargeMaterials Step = "charge-materials"
	ISeries         Step = "i-series"
	AdditionalNotes Step = "additional-notes"
	Review          Step = "review"
)

var sequence = []Step{
	BasicInfo,
	Categories,
	ValueScrap,
	ChargeMaterials,
	ISeries,
	AdditionalNotes,
	Review,
}

// Sequence returns the steps in wizard order.
func Sequence() []Step {
	out := make([]Step, len(sequence))
	copy(out, sequence)
	return out
}

// First is the step the wizard starts on.
func First() Step { return sequence[0] }

// Index returns the position of s in the sequence, or -1.
func (s Step) Index() int {
	for i, candidate := range sequence {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Next returns the following step. ok is false at review.
func (s Step) Next() (Step, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(sequence) {
		return s, false
	}
	return sequence[i+1], true
}

// Prev returns the preceding step. ok is false at basic-info.
func (s Step) Prev() (Step, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return sequence[i-1], true
}

// Title is the heading shown for the step.
func (s Step) Title() string {
	switch s {
	case BasicInfo:
		return "Basic Information"
	case Categories:
		return "Categories"
	case ValueScrap:
		return "Value Scrap"
	case ChargeMaterials:
		return "Charge Materials"
	case ISeries:
		return "i-Series Processors"
	case AdditionalNotes:
		return "Additional Notes"
	case Review:
		return "Review"
	default:
		return string(s)
	}
}

// Parse resolves a step name.
func Parse(name string) (Step, error) {
	s := Step(name)
	if s.Index() < 0 {
		return "", fmt.Errorf("unknown step %q", name)
	}
	return s, nil
}
