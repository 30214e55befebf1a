package latexwriter

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/costtable"
	"github.com/ginjaninja78/fsae-cost-report/internal/normalize"
)

const (
	bomSpec       = `p{13em} | p{3em} | p{2em} | p{10em} | p{7em} | p{2em} | p{4.5em} | p{4.5em} | p{5em} | p{5em} | p{5em}`
	summarySpec   = `p{20em} | p{8em} | p{8em} | p{8em} | p{8em} | p{12em}`
	partsSpec     = `m{20em}|m{8em}|m{6em}|m{4.5em}|m{7em}`
	materialsSpec = `m{14em}|m{12em}|m{6em}|m{6em}|m{4.5em}|m{4.5em}|m{4.5em}`
	processesSpec = `m{14em}|m{12em}|m{6em}|m{6em}|m{4.5em}|m{4.5em}`
	fastenersSpec = materialsSpec
	toolingsSpec  = `m{14em}|m{12em}|m{8em}|m{6em}|m{6em}|m{4.5em}`
)

// header turns column titles into white-on-black header cells. Titles
// starting with "=" are centered.
func header(titles ...string) []string {
	return lo.Map(titles, func(title string, _ int) string {
		if title[0] == '=' {
			return `\color{white}\centering ` + title[1:]
		}
		return `\color{white} ` + title
	})
}

func text(s string) string {
	return Escape(normalize.Capitalize(s))
}

func number(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// =============================================================================
// BOM
// =============================================================================

var bomHeader = header("Component", `=Asm / Prt \#`, "=Rev.", "=Assembly", "Description",
	"=Qty", `=Unit\\ Cost`, "=Cost", `=Cost\\ Table`, "=Drawing(s)", "=Photo(s)")

// pageRange references the pages of the labels <prefix>:<pn>-<i>.
func pageRange(prefix, pn string, count int) string {
	switch count {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(`\pageref{%s:%s-0}`, prefix, pn)
	default:
		return fmt.Sprintf(`\pageref{%s:%s-0}--\pageref{%s:%s-%d}`, prefix, pn, prefix, pn, count-1)
	}
}

// bomRow is the BOM line of a component. The unit cost is the table cost so
// the cost of children is not counted twice.
func bomRow(c *bom.Component) []string {
	pn := c.PartNumber()
	unitCost := c.TableCost()
	quantity := c.Quantity()

	parents := lo.Map(c.Parents(), func(p *bom.Component, _ int) string {
		return text(p.Name)
	})

	name := text(c.Name)
	if c.IsAssembly() {
		name = fmt.Sprintf(`\hline\rowcolor[gray]{.9}{%s}`, name)
	}

	return []string{
		name,
		`\centering ` + c.Base(),
		`\centering ` + c.Revision(),
		`\centering ` + normalize.HumanJoin(parents, true, `\&`),
		`\raggedright ` + text(c.Details),
		fmt.Sprintf(`\centering %d`, quantity),
		`\raggedleft` + money(unitCost),
		`\raggedleft` + money(unitCost*float64(quantity)),
		fmt.Sprintf(`\centering\pageref{ct:%s}`, pn),
		`\centering` + pageRange("dwg", pn, len(c.Drawings)),
		`\centering` + pageRange("img", pn, len(c.Pictures)),
	}
}

// =============================================================================
// COST TABLES
// =============================================================================

// costTables returns the cost tables of a component, headed by a subsection
// labelled ct:<pn>. Empty tables are omitted.
func costTables(c *bom.Component) []string {
	lines := []string{
		fmt.Sprintf(`\subsection{%s (%s)}`, Escape(c.Name), c.PartNumber()),
		fmt.Sprintf(`\label{ct:%s}`, c.PartNumber()),
	}

	lines = append(lines, costTable("Parts", partsSpec, partsRows(c.Children()))...)
	lines = append(lines, costTable("Materials", materialsSpec, materialsRows(c.Materials))...)
	lines = append(lines, costTable("Processes", processesSpec, processesRows(c.Processes))...)
	lines = append(lines, costTable("Fasteners", fastenersSpec, fastenersRows(c.Fasteners))...)
	lines = append(lines, costTable("Tooling", toolingsSpec, toolingsRows(c.Toolings))...)

	return lines
}

func costTable(title, spec string, rows [][]string) []string {
	if rows == nil {
		return []string{""}
	}

	lines := []string{
		`\subsubsection*{` + title + `}`,
		`\renewcommand{\arraystretch}{1.25}`,
	}
	lines = append(lines, Tabular(rows, longtable(spec))...)
	return append(lines, `\renewcommand{\arraystretch}{1}`, "")
}

func totalRow(span int, total float64) []string {
	return []string{
		fmt.Sprintf(`\multicolumn{%d}{r}{\textbf{Total}}`, span),
		fmt.Sprintf(`\raggedleft\textbf{%s}`, money(total)),
	}
}

func partsRows(links []bom.ChildLink) [][]string {
	if len(links) == 0 {
		return nil
	}

	children := lo.Map(links, func(link bom.ChildLink, _ int) *bom.Component {
		return link.Component
	})
	bom.SortDescending(children)
	quantities := lo.SliceToMap(links, func(link bom.ChildLink) (string, int) {
		return link.Component.PartNumber(), link.Quantity
	})

	rows := [][]string{header("Part", "=Part Number", "=Part Cost", "=Qty", "=Sub Total")}
	total := 0.0
	for _, child := range children {
		quantity := quantities[child.PartNumber()]
		subtotal := child.UnitCost() * float64(quantity)
		total += subtotal

		rows = append(rows, []string{
			`\raggedright ` + text(child.Name),
			`\centering ` + child.PartNumber(),
			`\raggedleft` + money(child.UnitCost()),
			fmt.Sprintf(`\centering %d`, quantity),
			`\raggedleft` + money(subtotal),
		})
	}

	return append(rows, totalRow(4, total))
}

func sizeCell(s *costtable.Size) string {
	if s == nil {
		return `\ `
	}
	return fmt.Sprintf("%s $%s$", size(s.Value), EscapeMath(s.Unit))
}

func materialsRows(materials []costtable.Material) [][]string {
	if len(materials) == 0 {
		return nil
	}

	rows := [][]string{header("Material", "Use", "=Size 1", "=Size 2", "=Unit Cost", "=Qty", "=Sub Total")}
	for _, m := range materials {
		rows = append(rows, []string{
			`\raggedright ` + text(m.Name),
			`\raggedright ` + text(m.Use),
			`\centering ` + sizeCell(m.Size1),
			`\centering ` + sizeCell(m.Size2),
			`\raggedleft` + money(m.UnitCost),
			fmt.Sprintf(`\centering %.3f`, m.Quantity),
			`\raggedleft` + money(m.Subtotal()),
		})
	}

	return append(rows, totalRow(6, costtable.Sum(materials)))
}

func processesRows(processes []costtable.Process) [][]string {
	if len(processes) == 0 {
		return nil
	}

	rows := [][]string{header("Process", "Use", "=Cost", "=Qty", "=Multiplier", "=Sub Total")}
	for _, p := range processes {
		rows = append(rows, []string{
			`\raggedright ` + text(p.Name),
			`\raggedright ` + text(p.Use),
			fmt.Sprintf(`\raggedleft %s / $%s$`, money(p.UnitCost), EscapeMath(p.Unit)),
			fmt.Sprintf(`\centering %4.2f`, p.Quantity),
			fmt.Sprintf(`\centering %4.2f`, p.EffectiveMultiplier()),
			`\raggedleft` + money(p.Subtotal()),
		})
	}

	return append(rows, totalRow(5, costtable.Sum(processes)))
}

func fastenersRows(fasteners []costtable.Fastener) [][]string {
	if len(fasteners) == 0 {
		return nil
	}

	rows := [][]string{header("Fastener", "Use", "=Size 1", "=Size 2", "=Cost", "=Qty", "=Sub Total")}
	for _, f := range fasteners {
		rows = append(rows, []string{
			`\raggedright ` + text(f.Name),
			`\raggedright ` + text(f.Use),
			`\centering ` + sizeCell(f.Size1),
			`\centering ` + sizeCell(f.Size2),
			`\raggedleft` + money(f.UnitCost),
			`\centering ` + number(f.Quantity),
			`\raggedleft` + money(f.Subtotal()),
		})
	}

	return append(rows, totalRow(6, costtable.Sum(fasteners)))
}

func toolingsRows(toolings []costtable.Tooling) [][]string {
	if len(toolings) == 0 {
		return nil
	}

	rows := [][]string{header("Tooling", "Use", "=Unit Cost", "=Qty", "=PVF", "=Sub Total")}
	for _, t := range toolings {
		rows = append(rows, []string{
			`\raggedright ` + text(t.Name),
			`\raggedright ` + text(t.Use),
			fmt.Sprintf(`\raggedleft %s / $%s$`, money(t.UnitCost), EscapeMath(t.Unit)),
			`\centering ` + number(t.Quantity),
			`\centering ` + number(t.PVF),
			`\raggedleft` + money(t.Subtotal()),
		})
	}

	return append(rows, totalRow(5, costtable.Sum(toolings)))
}
