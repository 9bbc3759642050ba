// Package report renders a verification result for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/egoavara/verify-structure/internal/i18n"
	"github.com/egoavara/verify-structure/internal/verify"
)

const (
	markPass = "✓"
	markFail = "✗"
	bullet   = "•"
)

// summaryColumns are the per-category columns of the summary table
var summaryColumns = []struct {
	category verify.Category
	label    string
}{
	{verify.CategoryManifest, "ColumnManifest"},
	{verify.CategoryPlacement, "ColumnPlacement"},
	{verify.CategorySkills, "ColumnSkills"},
	{verify.CategoryCommands, "ColumnCommands"},
	{verify.CategoryAgents, "ColumnAgents"},
	{verify.CategoryHooks, "ColumnHooks"},
	{verify.CategoryMCP, "ColumnMCP"},
	{verify.CategoryPaths, "ColumnPaths"},
}

type styles struct {
	heading lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	bold    lipgloss.Style
	red     lipgloss.Style
	yellow  lipgloss.Style
	green   lipgloss.Style
	dim     lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		section: r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("6")),
		bold:    r.NewStyle().Bold(true),
		red:     r.NewStyle().Foreground(lipgloss.Color("1")),
		yellow:  r.NewStyle().Foreground(lipgloss.Color("3")),
		green:   r.NewStyle().Foreground(lipgloss.Color("2")),
		dim:     r.NewStyle().Faint(true),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Printer writes reports to one output. Colors follow the terminal
// capabilities of that output, so redirected output stays plain.
type Printer struct {
	w  io.Writer
	r  *lipgloss.Renderer
	s  styles
	tr *i18n.Translator
}

// New creates a printer writing to w with messages from tr
func New(w io.Writer, tr *i18n.Translator) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{w: w, r: r, s: newStyles(r), tr: tr}
}

// Heading prints the banner shown before the checks run
func (p *Printer) Heading(strict bool) {
	id := "VerifyHeading"
	if strict {
		id = "VerifyHeadingStrict"
	}
	fmt.Fprintf(p.w, "\n%s\n\n", p.s.heading.Render(p.tr.T(id, nil)))
}

// Render prints every section of the report and the final verdict
func (p *Printer) Render(res *verify.Result, strict bool) {
	totals := verify.Tally(res)

	p.marketplaceErrors(res.MarketplaceErrors)
	if len(res.Units) > 0 {
		p.summary(res.Units)
		p.details(res.Units)
	}
	p.warnings(res.Units, totals.Warnings, strict)
	p.info(res.Units, totals.Info)
	p.verdict(totals, strict)
}

func (p *Printer) marketplaceErrors(errs []string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(p.w, "%s\n\n", p.s.section.Inherit(p.s.red).Render(p.tr.T("MarketplaceErrorsHeader", nil)))
	for _, e := range errs {
		fmt.Fprintf(p.w, "  %s\n", p.s.red.Render(bullet+" "+e))
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) summary(units []verify.UnitResult) {
	headers := []string{p.tr.T("ColumnPlugin", nil)}
	for _, col := range summaryColumns {
		headers = append(headers, p.tr.T(col.label, nil))
	}
	headers = append(headers, p.tr.T("ColumnWarnings", nil))

	rows := make([][]string, 0, len(units))
	for _, u := range units {
		row := []string{u.Name}
		for _, col := range summaryColumns {
			row = append(row, p.mark(len(u.Get(col.category)) == 0))
		}
		row = append(row, p.warningCount(len(u.Get(verify.CategoryWarnings))))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.s.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.s.header
			}
			style := p.r.NewStyle().Padding(0, 1)
			if col == 0 {
				return style.Inherit(p.s.label)
			}
			return style.Align(lipgloss.Center)
		})

	fmt.Fprintln(p.w, p.s.section.Render(p.tr.T("SummaryTitle", nil)))
	fmt.Fprintln(p.w, t.Render())
	fmt.Fprintln(p.w)
}

func (p *Printer) mark(ok bool) string {
	if ok {
		return p.s.green.Render(markPass)
	}
	return p.s.red.Render(markFail)
}

func (p *Printer) warningCount(n int) string {
	if n == 0 {
		return p.s.green.Render("0")
	}
	return p.s.yellow.Render(fmt.Sprint(n))
}

func (p *Printer) details(units []verify.UnitResult) {
	for _, u := range units {
		if !u.HasErrors() {
			continue
		}
		header := p.tr.T("DetailedErrorsHeader", map[string]any{"Plugin": u.Name})
		fmt.Fprintf(p.w, "\n%s\n", p.s.section.Inherit(p.s.yellow).Render(header))
		for _, c := range verify.Categories {
			msgs := u.Get(c)
			if !c.IsError() || len(msgs) == 0 {
				continue
			}
			fmt.Fprintf(p.w, "\n  %s\n", p.s.label.Render(categoryLabel(c)+":"))
			for _, m := range msgs {
				fmt.Fprintf(p.w, "    %s\n", p.s.red.Render(bullet+" "+m))
			}
		}
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) warnings(units []verify.UnitResult, total int, strict bool) {
	if total == 0 {
		return
	}
	style, id := p.s.yellow, "WarningsHeader"
	if strict {
		style, id = p.s.red, "WarningsHeaderStrict"
	}
	fmt.Fprintf(p.w, "\n%s\n\n", p.s.section.Inherit(style).Render(p.tr.T(id, map[string]any{"Count": total})))
	p.grouped(units, verify.CategoryWarnings, style)
	if strict {
		fmt.Fprintf(p.w, "\n  %s\n", p.s.red.Render(p.tr.T("StrictWarningsNote", nil)))
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) info(units []verify.UnitResult, total int) {
	if total == 0 {
		return
	}
	fmt.Fprintf(p.w, "\n%s\n\n", p.s.section.Inherit(p.s.dim).Render(p.tr.T("InfoHeader", map[string]any{"Count": total})))
	p.grouped(units, verify.CategoryInfo, p.s.dim)
	fmt.Fprintln(p.w)
}

// grouped prints one category's messages under each plugin name
func (p *Printer) grouped(units []verify.UnitResult, c verify.Category, style lipgloss.Style) {
	for _, u := range units {
		msgs := u.Get(c)
		if len(msgs) == 0 {
			continue
		}
		fmt.Fprintf(p.w, "  %s\n", p.s.bold.Render(u.Name+":"))
		for _, m := range msgs {
			fmt.Fprintf(p.w, "    %s\n", style.Render(bullet+" "+m))
		}
	}
}

func (p *Printer) verdict(t verify.Totals, strict bool) {
	panel := p.r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if t.Failed(strict) {
		body := p.s.section.Inherit(p.s.red).Render(p.failMessage(t, strict)) + "\n" + p.tr.T("VerdictSeeDetails", nil)
		fmt.Fprintln(p.w, panel.BorderForeground(lipgloss.Color("1")).Render(body))
		return
	}

	lines := []string{p.tr.T("VerdictPass", nil)}
	if t.Warnings > 0 {
		lines = append(lines, p.tr.T("VerdictPassWarnings", map[string]any{"Warnings": t.Warnings}))
	}
	lines = append(lines, p.tr.T("VerdictPassValid", nil))
	body := p.s.section.Inherit(p.s.green).Render(strings.Join(lines, "\n"))
	fmt.Fprintln(p.w, panel.BorderForeground(lipgloss.Color("2")).Render(body))
}

func (p *Printer) failMessage(t verify.Totals, strict bool) string {
	data := map[string]any{"Errors": t.Errors, "Warnings": t.Warnings}
	if t.Errors == 0 && strict && t.Warnings > 0 {
		return p.tr.T("VerdictFailWarningsOnly", data)
	}
	msg := p.tr.T("VerdictFailErrors", data)
	if t.Warnings > 0 {
		msg += p.tr.T("VerdictAndWarnings", data)
	}
	if strict && t.Warnings > 0 {
		msg += p.tr.T("VerdictStrictSuffix", nil)
	}
	return msg
}

// categoryLabel capitalizes a category name for section headings
func categoryLabel(c verify.Category) string {
	s := string(c)
	if c == verify.CategoryMCP {
		return "MCP"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
