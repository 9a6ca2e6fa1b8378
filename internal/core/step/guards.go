package step

import (
	"fmt"
	"strings"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/form"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// Context is what a step guard may look at.
type Context struct {
	State  form.State
	Counts catalog.Counts
}

// CanComplete evaluates the completion guard for s.
func CanComplete(s Step, ctx Context) GuardResult {
	switch s {
	case BasicInfo:
		return CanCompleteBasicInfo(ctx)
	case Categories:
		return CanCompleteCategories(ctx)
	case ValueScrap:
		return CanCompleteValueScrap(ctx)
	case ChargeMaterials:
		return CanCompleteChargeMaterials(ctx)
	case ISeries:
		return CanCompleteISeries(ctx)
	case AdditionalNotes:
		return CanCompleteAdditionalNotes(ctx)
	case Review:
		return allow()
	default:
		return deny("unknown step %q", s)
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// CanCompleteBasicInfo evaluates the basic-info step.
// Rules:
// - Employee name must be set
// - A company must be selected
// - Total time must be selected
func CanCompleteBasicInfo(ctx Context) GuardResult {
	var missing []string
	if blank(ctx.State.EmployeeName) {
		missing = append(missing, "employee")
	}
	if blank(ctx.State.CompanyID) {
		missing = append(missing, "company")
	}
	if blank(ctx.State.TotalTime) {
		missing = append(missing, "total time")
	}
	if len(missing) > 0 {
		return deny("basic info incomplete: missing %s", strings.Join(missing, ", "))
	}
	return allow()
}

// CanCompleteCategories evaluates the categories step.
// Rules:
// - Skippable when no categories are configured
// - "No" completes the step
// - "Yes" needs at least one entry, each with a category and a quantity
func CanCompleteCategories(ctx Context) GuardResult {
	if ctx.Counts.Categories == 0 {
		return allow()
	}

	switch ctx.State.HasCategories {
	case form.No:
		return allow()
	case form.Yes:
		if len(ctx.State.Categories) == 0 {
			return deny("add at least one category or answer no")
		}
		for i, c := range ctx.State.Categories {
			if blank(c.Category) || blank(c.Quantity) {
				return deny("category row %d needs both a category and a quantity", i+1)
			}
		}
		return allow()
	default:
		return deny("answer whether categories were received")
	}
}

// CanCompleteValueScrap evaluates the value-scrap step.
// An empty list is valid; every present row needs a material and a quantity.
func CanCompleteValueScrap(ctx Context) GuardResult {
	return materialsComplete("value scrap", ctx.State.ValueScrap)
}

// CanCompleteChargeMaterials evaluates the charge-materials step with the
// value-scrap rule.
func CanCompleteChargeMaterials(ctx Context) GuardResult {
	return materialsComplete("charge material", ctx.State.ChargeMaterials)
}

func materialsComplete(label string, entries []form.MaterialEntry) GuardResult {
	for i, e := range entries {
		if blank(e.MaterialID) || blank(e.Quantity) {
			return deny("%s row %d needs both a material and a quantity", label, i+1)
		}
	}
	return allow()
}

// CanCompleteISeries evaluates the i-series step.
// Rules:
// - Skippable when the processor catalog is empty
// - Both the PCs and the Laptops question must be answered
// - For a "Yes" with entries, every entry needs series, generation and quantity
func CanCompleteISeries(ctx Context) GuardResult {
	if ctx.Counts.Processors == 0 {
		return allow()
	}
	if r := processorsComplete("PCs", ctx.State.HasPCs, ctx.State.PCs); !r.Allowed {
		return r
	}
	return processorsComplete("laptops", ctx.State.HasLaptops, ctx.State.Laptops)
}

func processorsComplete(label string, answer form.Answer, entries []form.ProcessorEntry) GuardResult {
	switch answer {
	case form.No:
		return allow()
	case form.Yes:
		for i, e := range entries {
			if blank(e.Series) || blank(e.Generation) || blank(e.Quantity) {
				return deny("i-series %s row %d needs series, generation and quantity", label, i+1)
			}
		}
		return allow()
	default:
		return deny("answer whether i-series %s were received", label)
	}
}

// CanCompleteAdditionalNotes evaluates the additional-notes step.
// Both questions must be answered. The answer flag gates completion, not the
// note text: "Yes" with no text entered still completes the step.
func CanCompleteAdditionalNotes(ctx Context) GuardResult {
	if !ctx.State.HasSuspectedValue.Answered() {
		return deny("answer whether any material is suspected to have value")
	}
	if !ctx.State.HasOtherNotes.Answered() {
		return deny("answer whether there are other notes")
	}
	return allow()
}
