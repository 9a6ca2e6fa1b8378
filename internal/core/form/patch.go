package form

import (
	"slices"
	"time"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/catalog"
)

// Patch is a partial update to State. A nil field leaves the key untouched.
type Patch struct {
	StartedAt  *time.Time
	FinishedAt **time.Time

	EmployeeName *string
	TotalTime    *string

	CompanyID     *string
	CompanyName   *string
	Address       *string
	ContactPerson *string
	Email         *string
	Phone         *string

	HasCategories *Answer
	Categories    *[]CategoryEntry

	ValueScrap            *[]MaterialEntry
	ChargeMaterials       *[]MaterialEntry
	ValueScrapTotals      *[]aggregate.Total
	ChargeMaterialsTotals *[]aggregate.Total

	HasPCs     *Answer
	PCs        *[]ProcessorEntry
	HasLaptops *Answer
	Laptops    *[]ProcessorEntry

	HasSuspectedValue  *Answer
	SuspectedValueNote *OptionalText
	HasOtherNotes      *Answer
	OtherNotes         *OptionalText
}

// Ptr returns a pointer to v. Convenience for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// ApplyPatch returns current with every key present in p overwritten.
// No validation is done here. Lists are copied so the result shares no
// backing arrays with current or p.
func ApplyPatch(current State, p Patch) State {
	next := current.Clone()

	set(&next.StartedAt, p.StartedAt)
	if p.FinishedAt != nil {
		if *p.FinishedAt == nil {
			next.FinishedAt = nil
		} else {
			t := **p.FinishedAt
			next.FinishedAt = &t
		}
	}

	set(&next.EmployeeName, p.EmployeeName)
	set(&next.TotalTime, p.TotalTime)

	set(&next.CompanyID, p.CompanyID)
	set(&next.CompanyName, p.CompanyName)
	set(&next.Address, p.Address)
	set(&next.ContactPerson, p.ContactPerson)
	set(&next.Email, p.Email)
	set(&next.Phone, p.Phone)

	set(&next.HasCategories, p.HasCategories)
	setList(&next.Categories, p.Categories)

	setList(&next.ValueScrap, p.ValueScrap)
	setList(&next.ChargeMaterials, p.ChargeMaterials)
	setList(&next.ValueScrapTotals, p.ValueScrapTotals)
	setList(&next.ChargeMaterialsTotals, p.ChargeMaterialsTotals)

	set(&next.HasPCs, p.HasPCs)
	setList(&next.PCs, p.PCs)
	set(&next.HasLaptops, p.HasLaptops)
	setList(&next.Laptops, p.Laptops)

	set(&next.HasSuspectedValue, p.HasSuspectedValue)
	set(&next.SuspectedValueNote, p.SuspectedValueNote)
	set(&next.HasOtherNotes, p.HasOtherNotes)
	set(&next.OtherNotes, p.OtherNotes)

	return next
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setList[T any](dst *[]T, v *[]T) {
	if v == nil {
		return
	}
	if *v == nil {
		*dst = []T{}
		return
	}
	*dst = slices.Clone(*v)
}

// WithDerivedTotals returns p extended with recomputed per-unit totals for
// any material list p replaces. Totals supplied by the caller are overwritten.
func WithDerivedTotals(p Patch) Patch {
	if p.ValueScrap != nil {
		p.ValueScrapTotals = Ptr(TotalsFor(*p.ValueScrap))
	}
	if p.ChargeMaterials != nil {
		p.ChargeMaterialsTotals = Ptr(TotalsFor(*p.ChargeMaterials))
	}
	return p
}

// SelectCompany copies the company's contact fields into a patch. The copy is
// taken now; later catalog edits do not reach an in-progress form.
func SelectCompany(c catalog.Company) Patch {
	return Patch{
		CompanyID:     Ptr(c.ID),
		CompanyName:   Ptr(c.Name),
		Address:       Ptr(c.Address),
		ContactPerson: Ptr(c.ContactPerson),
		Email:         Ptr(c.Email),
		Phone:         Ptr(c.Phone),
	}
}
