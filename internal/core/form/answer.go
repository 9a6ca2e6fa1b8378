package form

import "fmt"

// Answer is the reply to a yes/no question that gates an optional sub-form.
// The zero value is Unanswered.
type Answer int

const (
	Unanswered Answer = iota
	Yes
	No
)

// String returns the lowercase name of the answer.
func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

// Answered reports whether the question has been answered either way.
func (a Answer) Answered() bool {
	return a == Yes || a == No
}

// ParseAnswer parses "yes"/"y"/"no"/"n"/"" (case-sensitive lowercase, plus
// the capitalized forms the UI shows).
func ParseAnswer(s string) (Answer, error) {
	switch s {
	case "yes", "y", "Yes", "YES", "true":
		return Yes, nil
	case "no", "n", "No", "NO", "false":
		return No, nil
	case "":
		return Unanswered, nil
	default:
		return Unanswered, fmt.Errorf("invalid answer %q (want yes or no)", s)
	}
}

// MarshalText encodes the answer as its name.
func (a Answer) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts "yes", "no" and "unanswered".
func (a *Answer) UnmarshalText(text []byte) error {
	if string(text) == "unanswered" {
		*a = Unanswered
		return nil
	}
	parsed, err := ParseAnswer(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
