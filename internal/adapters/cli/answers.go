package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/step"
	"github.com/example/checkin/internal/core/wizard"
)

// AnswerFile is a whole check-in written down ahead of time. Companies and
// materials are referenced by catalog ID or by name.
type AnswerFile struct {
	Employee  string `json:"employee"`
	Company   string `json:"company"`
	TotalTime string `json:"totalTime"`

	HasCategories form.Answer          `json:"hasCategories"`
	Categories    []form.CategoryEntry `json:"categories"`

	ValueScrap      []MaterialAnswer `json:"valueScrap"`
	ChargeMaterials []MaterialAnswer `json:"chargeMaterials"`

	HasPCs     form.Answer           `json:"hasPCs"`
	PCs        []form.ProcessorEntry `json:"pcs"`
	HasLaptops form.Answer           `json:"hasLaptops"`
	Laptops    []form.ProcessorEntry `json:"laptops"`

	HasSuspectedValue  form.Answer       `json:"hasSuspectedValue"`
	SuspectedValueNote form.OptionalText `json:"suspectedValueNote"`
	HasOtherNotes      form.Answer       `json:"hasOtherNotes"`
	OtherNotes         form.OptionalText `json:"otherNotes"`
}

// MaterialAnswer is one material row of an answer file.
type MaterialAnswer struct {
	Material string `json:"material"`
	Quantity string `json:"quantity"`
}

// ReadAnswerFile decodes an answer file. Unknown keys are rejected.
func ReadAnswerFile(r io.Reader) (*AnswerFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var a AnswerFile
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("invalid answer file: %w", err)
	}
	return &a, nil
}

// Replay feeds the answers into w one step at a time, advancing after each.
// It stops at the first step whose guard refuses, leaving w on that step.
// On success w is on review.
func Replay(w *wizard.Controller, catalogs catalog.Catalogs, a *AnswerFile) error {
	for w.Current() != step.Review {
		patch, err := a.patchFor(w.Current(), catalogs)
		if err != nil {
			return err
		}
		w.Update(patch)
		if err := w.GoNext(); err != nil {
			return err
		}
	}
	return nil
}

func (a *AnswerFile) patchFor(s step.Step, catalogs catalog.Catalogs) (form.Patch, error) {
	switch s {
	case step.BasicInfo:
		p := form.Patch{
			EmployeeName: form.Ptr(strings.TrimSpace(a.Employee)),
			TotalTime:    form.Ptr(strings.TrimSpace(a.TotalTime)),
		}
		if a.Company != "" {
			company, ok := findCompany(catalogs.Companies, a.Company)
			if !ok {
				return form.Patch{}, fmt.Errorf("unknown company %q", a.Company)
			}
			selected := form.SelectCompany(company)
			p.CompanyID, p.CompanyName = selected.CompanyID, selected.CompanyName
			p.Address, p.ContactPerson = selected.Address, selected.ContactPerson
			p.Email, p.Phone = selected.Email, selected.Phone
		}
		return p, nil

	case step.Categories:
		return form.Patch{
			HasCategories: form.Ptr(a.HasCategories),
			Categories:    form.Ptr(orEmpty(a.Categories)),
		}, nil

	case step.ValueScrap:
		entries, err := resolveMaterials("value scrap", catalogs.ValueScrapMaterials, a.ValueScrap)
		if err != nil {
			return form.Patch{}, err
		}
		return form.Patch{ValueScrap: form.Ptr(entries)}, nil

	case step.ChargeMaterials:
		entries, err := resolveMaterials("charge material", catalogs.ChargeMaterials, a.ChargeMaterials)
		if err != nil {
			return form.Patch{}, err
		}
		return form.Patch{ChargeMaterials: form.Ptr(entries)}, nil

	case step.ISeries:
		return form.Patch{
			HasPCs:     form.Ptr(a.HasPCs),
			PCs:        form.Ptr(orEmpty(a.PCs)),
			HasLaptops: form.Ptr(a.HasLaptops),
			Laptops:    form.Ptr(orEmpty(a.Laptops)),
		}, nil

	case step.AdditionalNotes:
		return form.Patch{
			HasSuspectedValue:  form.Ptr(a.HasSuspectedValue),
			SuspectedValueNote: form.Ptr(a.SuspectedValueNote),
			HasOtherNotes:      form.Ptr(a.HasOtherNotes),
			OtherNotes:         form.Ptr(a.OtherNotes),
		}, nil
	}
	return form.Patch{}, nil
}

func findCompany(companies []catalog.Company, ref string) (catalog.Company, bool) {
	for _, c := range companies {
		if c.ID == ref {
			return c, true
		}
	}
	for _, c := range companies {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return catalog.Company{}, false
}

func findMaterial(list []catalog.Material, ref string) (catalog.Material, bool) {
	if m, ok := catalog.FindMaterial(list, ref); ok {
		return m, true
	}
	for _, m := range list {
		if strings.EqualFold(m.Name, ref) {
			return m, true
		}
	}
	return catalog.Material{}, false
}

func resolveMaterials(label string, list []catalog.Material, answers []MaterialAnswer) ([]form.MaterialEntry, error) {
	entries := make([]form.MaterialEntry, 0, len(answers))
	for i, a := range answers {
		m, ok := findMaterial(list, a.Material)
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown material %q", label, i+1, a.Material)
		}
		entries = append(entries, form.MaterialFromCatalog(m, a.Quantity))
	}
	return entries, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
