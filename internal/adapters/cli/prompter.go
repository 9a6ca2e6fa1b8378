package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/step"
	"github.com/example/checkin/internal/core/wizard"
	"github.com/example/checkin/internal/ports/primary"
)

// ErrAbandoned is returned by Run when the user quits or input ends.
var ErrAbandoned = errors.New("check-in abandoned")

// WizardPrompter drives a wizard from a line-oriented terminal. One prompt
// is answered at a time, so the controller only ever sees one transition in
// flight.
type WizardPrompter struct {
	in       *bufio.Scanner
	out      io.Writer
	catalogs catalog.Catalogs
	wizard   *wizard.Controller
	submit   primary.SubmissionService
	visited  map[step.Step]bool
}

// NewWizardPrompter creates a prompter for one wizard session.
func NewWizardPrompter(in io.Reader, out io.Writer, catalogs catalog.Catalogs, w *wizard.Controller, submit primary.SubmissionService) *WizardPrompter {
	return &WizardPrompter{
		in:       bufio.NewScanner(in),
		out:      out,
		catalogs: catalogs,
		wizard:   w,
		submit:   submit,
		visited:  make(map[step.Step]bool),
	}
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	warnColor   = color.New(color.FgYellow)
)

// Run asks every step's questions until the check-in is submitted or the
// user quits.
func (p *WizardPrompter) Run(ctx context.Context) (*primary.SubmitResult, error) {
	for {
		current := p.wizard.Current()
		seq := step.Sequence()
		headerColor.Fprintf(p.out, "\n[%d/%d] %s\n", current.Index()+1, len(seq), current.Title())

		if current == step.Review {
			p.printReview()
			result, done, err := p.reviewMenu(ctx)
			if err != nil || done {
				return result, err
			}
			continue
		}

		if err := p.askStep(current); err != nil {
			return nil, p.abandon(err)
		}
		p.visited[current] = true

		cmd, err := p.line("[enter] next, b back, q quit: ")
		if err != nil {
			return nil, p.abandon(err)
		}
		switch strings.ToLower(cmd) {
		case "b", "back":
			if err := p.wizard.GoBack(); err != nil {
				p.warn(err)
			}
		case "q", "quit":
			return nil, p.abandon(nil)
		default:
			if err := p.wizard.GoNext(); err != nil {
				p.warn(err)
			}
		}
	}
}

func (p *WizardPrompter) abandon(err error) error {
	p.wizard.Reset()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return ErrAbandoned
}

func (p *WizardPrompter) askStep(s step.Step) error {
	if p.visited[s] && p.wizard.CheckStep(s).Allowed {
		keep, err := p.line("Keep current answers? [Y/n]: ")
		if err != nil {
			return err
		}
		if a, _ := form.ParseAnswer(keep); a != form.No {
			return nil
		}
	}

	switch s {
	case step.BasicInfo:
		return p.askBasicInfo()
	case step.Categories:
		return p.askCategories()
	case step.ValueScrap:
		entries, err := p.askMaterials(p.catalogs.ValueScrapMaterials)
		if err != nil {
			return err
		}
		p.wizard.Update(form.Patch{ValueScrap: form.Ptr(entries)})
	case step.ChargeMaterials:
		entries, err := p.askMaterials(p.catalogs.ChargeMaterials)
		if err != nil {
			return err
		}
		p.wizard.Update(form.Patch{ChargeMaterials: form.Ptr(entries)})
	case step.ISeries:
		return p.askISeries()
	case step.AdditionalNotes:
		return p.askNotes()
	}
	return nil
}

func (p *WizardPrompter) askBasicInfo() error {
	names := make([]string, len(p.catalogs.Employees))
	for i, e := range p.catalogs.Employees {
		names[i] = e.Name
	}
	employee, err := p.chooseOrType("Employee", names)
	if err != nil {
		return err
	}

	companies := make([]string, len(p.catalogs.Companies))
	for i, c := range p.catalogs.Companies {
		companies[i] = c.Name
	}
	patch := form.Patch{EmployeeName: form.Ptr(employee)}
	if len(companies) == 0 {
		p.warn(errors.New("no companies are configured; add one with 'checkin catalog add companies'"))
	} else {
		idx, err := p.choose("Company", companies)
		if err != nil {
			return err
		}
		if idx >= 0 {
			patch = mergeCompany(patch, form.SelectCompany(p.catalogs.Companies[idx]))
		}
	}

	hours, err := p.line("Total time (hours): ")
	if err != nil {
		return err
	}
	patch.TotalTime = form.Ptr(hours)

	p.wizard.Update(patch)
	return nil
}

func mergeCompany(p, company form.Patch) form.Patch {
	p.CompanyID, p.CompanyName = company.CompanyID, company.CompanyName
	p.Address, p.ContactPerson = company.Address, company.ContactPerson
	p.Email, p.Phone = company.Email, company.Phone
	return p
}

func (p *WizardPrompter) askCategories() error {
	if len(p.catalogs.Categories) == 0 {
		fmt.Fprintln(p.out, "No categories configured; nothing to ask.")
		return nil
	}

	answer, err := p.yesNo("Were any categories received?")
	if err != nil {
		return err
	}
	entries := []form.CategoryEntry{}
	if answer == form.Yes {
		names := make([]string, len(p.catalogs.Categories))
		for i, c := range p.catalogs.Categories {
			names[i] = c.Name
		}
		for {
			idx, err := p.choose("Category (blank to finish)", names)
			if err != nil {
				return err
			}
			if idx < 0 {
				break
			}
			qty, err := p.line("Quantity: ")
			if err != nil {
				return err
			}
			entries = append(entries, form.CategoryEntry{Category: names[idx], Quantity: qty})
		}
	}

	p.wizard.Update(form.Patch{HasCategories: form.Ptr(answer), Categories: form.Ptr(entries)})
	return nil
}

func (p *WizardPrompter) askMaterials(list []catalog.Material) ([]form.MaterialEntry, error) {
	entries := []form.MaterialEntry{}
	if len(list) == 0 {
		fmt.Fprintln(p.out, "No materials configured; nothing to ask.")
		return entries, nil
	}

	names := make([]string, len(list))
	for i, m := range list {
		names[i] = fmt.Sprintf("%s (%s)", m.Name, m.Measurement)
	}
	for {
		idx, err := p.choose("Material (blank to finish)", names)
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			return entries, nil
		}
		qty, err := p.line("Quantity: ")
		if err != nil {
			return nil, err
		}
		entries = append(entries, form.MaterialFromCatalog(list[idx], qty))
	}
}

func (p *WizardPrompter) askISeries() error {
	if len(p.catalogs.Processors) == 0 {
		fmt.Fprintln(p.out, "No processors configured; nothing to ask.")
		return nil
	}

	hasPCs, pcs, err := p.askProcessors("PCs")
	if err != nil {
		return err
	}
	hasLaptops, laptops, err := p.askProcessors("laptops")
	if err != nil {
		return err
	}

	p.wizard.Update(form.Patch{
		HasPCs:     form.Ptr(hasPCs),
		PCs:        form.Ptr(pcs),
		HasLaptops: form.Ptr(hasLaptops),
		Laptops:    form.Ptr(laptops),
	})
	return nil
}

func (p *WizardPrompter) askProcessors(label string) (form.Answer, []form.ProcessorEntry, error) {
	entries := []form.ProcessorEntry{}
	answer, err := p.yesNo(fmt.Sprintf("Were any i-series %s received?", label))
	if err != nil || answer != form.Yes {
		return answer, entries, err
	}

	names := make([]string, len(p.catalogs.Processors))
	for i, proc := range p.catalogs.Processors {
		names[i] = proc.Series + " " + proc.Generation
	}
	for {
		idx, err := p.choose("Processor (blank to finish)", names)
		if err != nil {
			return answer, nil, err
		}
		if idx < 0 {
			return answer, entries, nil
		}
		qty, err := p.line("Quantity: ")
		if err != nil {
			return answer, nil, err
		}
		proc := p.catalogs.Processors[idx]
		entries = append(entries, form.ProcessorEntry{Series: proc.Series, Generation: proc.Generation, Quantity: qty})
	}
}

func (p *WizardPrompter) askNotes() error {
	hasSuspected, suspected, err := p.askNote("Is any material suspected to have value?")
	if err != nil {
		return err
	}
	hasOther, other, err := p.askNote("Any other notes?")
	if err != nil {
		return err
	}

	p.wizard.Update(form.Patch{
		HasSuspectedValue:  form.Ptr(hasSuspected),
		SuspectedValueNote: form.Ptr(suspected),
		HasOtherNotes:      form.Ptr(hasOther),
		OtherNotes:         form.Ptr(other),
	})
	return nil
}

// askNote asks a gated note. "Yes" with a blank note leaves the note null;
// the answer alone completes the question.
func (p *WizardPrompter) askNote(question string) (form.Answer, form.OptionalText, error) {
	answer, err := p.yesNo(question)
	if err != nil || answer != form.Yes {
		return answer, form.OptionalText{}, err
	}
	text, err := p.line("Note (blank for none): ")
	if err != nil {
		return answer, form.OptionalText{}, err
	}
	if text == "" {
		return answer, form.OptionalText{}, nil
	}
	return answer, form.Text(text), nil
}

func (p *WizardPrompter) printReview() {
	s := p.wizard.State()

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Employee:\t%s\n", s.EmployeeName)
	fmt.Fprintf(w, "Company:\t%s\n", s.CompanyName)
	fmt.Fprintf(w, "Total time:\t%s\n", s.TotalTime)
	fmt.Fprintf(w, "Categories:\t%d rows, total %v\n", len(s.Categories), s.CategoryTotal())
	for _, t := range s.ValueScrapTotals {
		fmt.Fprintf(w, "Value scrap:\t%v %s\n", t.Total, t.Unit)
	}
	for _, t := range s.ChargeMaterialsTotals {
		fmt.Fprintf(w, "Charge materials:\t%v %s\n", t.Total, t.Unit)
	}
	fmt.Fprintf(w, "i-series:\tPCs %s (%d), laptops %s (%d)\n", s.HasPCs, len(s.PCs), s.HasLaptops, len(s.Laptops))
	fmt.Fprintf(w, "Notes:\tsuspected value %s, other %s\n", s.HasSuspectedValue, s.HasOtherNotes)
	w.Flush()
}

func (p *WizardPrompter) reviewMenu(ctx context.Context) (*primary.SubmitResult, bool, error) {
	cmd, err := p.line("s submit, e <step> edit, b back, q quit: ")
	if err != nil {
		return nil, true, p.abandon(err)
	}

	fields := strings.Fields(strings.ToLower(cmd))
	if len(fields) == 0 {
		return nil, false, nil
	}

	switch fields[0] {
	case "s", "submit":
		result, err := p.submit.Submit(ctx, p.wizard)
		if err != nil {
			// Stay on review for a retry or an edit.
			p.warn(err)
			return nil, false, nil
		}
		return result, true, nil
	case "e", "edit":
		if len(fields) < 2 {
			p.warn(errors.New("edit which step? e.g. 'e value-scrap'"))
			return nil, false, nil
		}
		target, err := step.Parse(fields[1])
		if err == nil {
			err = p.wizard.GoToStep(target)
		}
		if err != nil {
			p.warn(err)
		}
	case "b", "back":
		if err := p.wizard.GoBack(); err != nil {
			p.warn(err)
		}
	case "q", "quit":
		return nil, true, p.abandon(nil)
	default:
		p.warn(fmt.Errorf("unknown command %q", cmd))
	}
	return nil, false, nil
}

func (p *WizardPrompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *WizardPrompter) yesNo(question string) (form.Answer, error) {
	for {
		reply, err := p.line(question + " [y/n]: ")
		if err != nil {
			return form.Unanswered, err
		}
		if a, err := form.ParseAnswer(reply); err == nil && a.Answered() {
			return a, nil
		}
		p.warn(errors.New("please answer y or n"))
	}
}

// choose prints a numbered list and returns the chosen index, or -1 for a
// blank reply.
func (p *WizardPrompter) choose(label string, options []string) (int, error) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	for {
		reply, err := p.line(label + ": ")
		if err != nil {
			return -1, err
		}
		if reply == "" {
			return -1, nil
		}
		n, err := strconv.Atoi(reply)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		p.warn(fmt.Errorf("pick a number from 1 to %d", len(options)))
	}
}

// chooseOrType picks from options by number or takes free text. With no
// options it is a plain text prompt.
func (p *WizardPrompter) chooseOrType(label string, options []string) (string, error) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	reply, err := p.line(label + ": ")
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(reply); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return reply, nil
}

func (p *WizardPrompter) warn(err error) {
	warnColor.Fprintf(p.out, "! %v\n", err)
}
