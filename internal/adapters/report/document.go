// Package report renders stored check-ins and table dumps for printing and
// export.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/ports/primary"
)

const documentTemplate = `WAREHOUSE CHECK-IN
Check-in:	{{.ID}}
Submitted:	{{dash .CreatedAt}}
Employee:	{{.EmployeeName}}
Total time (hours):	{{dash .TotalTime}}
Started:	{{dash .StartedAt}}
Finished:	{{dash .FinishedAt}}
Time to complete:	{{elapsed .StartedAt .FinishedAt}}

COMPANY
Name:	{{.CompanyName}}
Address:	{{dash .Address}}
Contact:	{{dash .ContactPerson}}
Email:	{{dash .Email}}
Phone:	{{dash .Phone}}

CATEGORIES
{{- if .Categories}}
CATEGORY	QUANTITY
{{- range .Categories}}
{{.Category}}	{{.Quantity}}
{{- end}}
TOTAL	{{num (categoryTotal .Categories)}}
{{- else}}
(none)
{{- end}}

VALUE SCRAP
{{- template "materials" .ValueScrap}}
{{- template "totals" .ValueScrapTotals}}

CHARGE MATERIALS
{{- template "materials" .ChargeMaterials}}
{{- template "totals" .ChargeMaterialsTotals}}

I-SERIES PCS ({{yesno .HasISeriesPCs}})
{{- template "processors" .ISeriesPCs}}

I-SERIES LAPTOPS ({{yesno .HasISeriesLaptops}})
{{- template "processors" .ISeriesLaptops}}

NOTES
Suspected value:	{{note .SuspectedValueNote}}
Other notes:	{{note .OtherNotes}}
`

const sectionTemplates = `{{define "materials"}}
{{- if .}}
MATERIAL	QUANTITY	UNIT
{{- range .}}
{{.MaterialName}}	{{.Quantity}}	{{.Unit}}
{{- end}}
{{- else}}
(none)
{{- end}}
{{- end}}
{{define "totals"}}
{{- range .}}
TOTAL	{{num .Total}}	{{.Unit}}
{{- end}}
{{- end}}
{{define "processors"}}
{{- if .}}
SERIES	GENERATION	QUANTITY
{{- range .}}
{{.Series}}	{{.Generation}}	{{.Quantity}}
{{- end}}
{{- else}}
(none)
{{- end}}
{{- end}}`

// TextRenderer renders the printable plain-text document of a check-in.
// Per-unit material totals are printed as stored with the check-in.
type TextRenderer struct {
	tmpl *template.Template
}

// NewTextRenderer creates a renderer formatting numbers for tag.
func NewTextRenderer(tag language.Tag) *TextRenderer {
	printer := message.NewPrinter(tag)

	funcs := template.FuncMap{
		"num": func(v float64) string { return printer.Sprintf("%v", v) },
		"dash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "-"
			}
			return s
		},
		"yesno": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
		"note": func(t form.OptionalText) string {
			if !t.Valid || t.Text == "" {
				return "-"
			}
			return t.Text
		},
		"elapsed":       elapsed,
		"categoryTotal": categoryTotal,
	}

	return &TextRenderer{
		tmpl: template.Must(template.Must(template.New("checkin").Funcs(funcs).Parse(documentTemplate)).Parse(sectionTemplates)),
	}
}

// RenderCheckIn writes the document for c to w.
func (r *TextRenderer) RenderCheckIn(w io.Writer, c *primary.CheckIn) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := r.tmpl.Execute(tw, c); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return tw.Flush()
}

func categoryTotal(entries []form.CategoryEntry) float64 {
	quantities := make([]string, len(entries))
	for i, e := range entries {
		quantities[i] = e.Quantity
	}
	return aggregate.Sum(quantities)
}

// elapsed is the time between the two RFC 3339 stamps, or "-" if either is
// missing or unparseable.
func elapsed(started, finished string) string {
	s, err := time.Parse(time.RFC3339, started)
	if err != nil {
		return "-"
	}
	f, err := time.Parse(time.RFC3339, finished)
	if err != nil || f.Before(s) {
		return "-"
	}
	return f.Sub(s).Round(time.Second).String()
}
