package latexwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/costtable"
	"github.com/ginjaninja78/fsae-cost-report/internal/partnumber"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Nuts & bolts", `Nuts \& bolts`},
		{"100%", `100\%`},
		{"$5", `\$5`},
		{"#1_a", `\#1\_a`},
		{"{x}", `\{x\}`},
		{"[x]", `{[}x{]}`},
		{`a"b`, `a{''}b`},
		{`a\b`, `a\textbackslash{}b`},
		{"~<>^", `\textasciitilde{}\textless{}\textgreater{}\textasciicircum{}`},
		{"?`", "?{}`"},
		{"a\nb", `a\\b`},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), tt.in)
	}
}

func TestEscapeMath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "m^2", EscapeMath("m^2"))
	assert.Equal(t, "m_{x}", EscapeMath("m_{x}"))
	assert.Equal(t, `\%`, EscapeMath("%"))
	assert.Equal(t, `\$/\#`, EscapeMath("$/#"))
}

func TestTabular(t *testing.T) {
	t.Parallel()

	lines := Tabular([][]string{{"a", "b"}, {"c"}}, DefaultTabularOptions())
	assert.Equal(t, []string{
		`\begin{tabular}{cc}`,
		`\hline\hline`,
		`a & b\tabularnewline`,
		`c\tabularnewline`,
		`\hline`,
		`\end{tabular}`,
	}, lines)

	lines = Tabular([][]string{{"h1", "h2"}, {"1", "2"}}, longtable("l|r"))
	assert.Equal(t, []string{
		`\begin{longtable}[l]{l|r}`,
		`\rowcolor[gray]{0}`,
		`h1 & h2\tabularnewline\hline\hline\endhead`,
		`1 & 2\tabularnewline\hline`,
		`\hline`,
		`\end{longtable}`,
	}, lines)
}

func TestSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.00e-03", size(0.001))
	assert.Equal(t, "0.40", size(0.4))
	assert.Equal(t, "12.50", size(12.5))
	assert.Equal(t, `\$ 4.00`, money(4))
}

func newComponent(t *testing.T, pn, name string) *bom.Component {
	t.Helper()

	parsed, err := partnumber.Parse(pn)
	require.NoError(t, err)

	c, err := bom.NewComponent(pn+".csv", parsed.SystemLabel, name, parsed.Base, parsed.Revision, "")
	require.NoError(t, err)
	return c
}

func newMetadata(t *testing.T) *bom.Metadata {
	t.Helper()

	system, err := bom.NewSystem(1, "TM", "Random & stuff", bom.RGB{R: 255, G: 51})
	require.NoError(t, err)

	cart := newComponent(t, "TM-A1000-AA", "cart")
	cart.SetStoredQuantity(1)
	cart.Processes = []costtable.Process{{
		Line: costtable.Line{Name: "Weld", UnitCost: 2, Quantity: 3},
		Unit: "cm",
	}}
	cart.Pictures = []string{"/base/TM/pictures/TM-A1000-AA.jpg"}

	cup := newComponent(t, "TM-00001-AA", "cup, holder")
	cup.Details = "50% plastic"
	cup.Materials = []costtable.Material{{
		Line:  costtable.Line{Name: "ABS", Use: "body", UnitCost: 4, Quantity: 0.5},
		Size1: &costtable.Size{Value: 0.001, Unit: "m^3"},
	}}
	cup.Toolings = []costtable.Tooling{{
		Line: costtable.Line{Name: "Mold", UnitCost: 300, Quantity: 1},
		Unit: "mold",
		PVF:  3000,
	}}
	cup.Drawings = []string{"/base/TM/drawings/TM-00001-AA.pdf", "/base/TM/drawings/TM-00001-AA-2.pdf"}
	require.NoError(t, cart.AddChild(cup, 2))

	require.NoError(t, system.AddComponent(cart))
	require.NoError(t, system.AddComponent(cup))

	return &bom.Metadata{
		Year:            2011,
		CarNumber:       49,
		University:      "McGill University",
		TeamName:        "McGill Racing Team",
		CompetitionName: "Formula SAE Michigan",
		Introduction:    []string{"First paragraph.", "Second_paragraph."},
		Catalogue: map[string][]bom.CatalogueEntry{
			"TM": {{Name: "cup holder", PartNumber: "TM-00001-AA"}, {Name: "brake pads"}},
		},
		Systems: []*bom.System{system},
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	basepath := t.TempDir()
	data, err := New(zaptest.NewLogger(t)).Generate(basepath, newMetadata(t))
	require.NoError(t, err)
	doc := string(data)

	assert.True(t, strings.HasPrefix(doc, `\documentclass[letterpaper,landscape]{report}`))
	assert.True(t, strings.HasSuffix(doc, "\\end{document}\n"))
	assert.Contains(t, doc, `pdfauthor={McGill Racing Team}, `)
	assert.Contains(t, doc, `\definecolor{colorTM}{rgb}{1.000000,0.200000,0.000000}`)

	// Front matter
	assert.Contains(t, doc, "Second\\_paragraph.\n")
	assert.Contains(t, doc, `\rowcolor{colorTM}\raggedright Random \& stuff`)
	assert.Contains(t, doc, `\hline\raggedright\textbf{Total Vehicle} & \centering\textbf{\$ 4.00}`)
	assert.Contains(t, doc, `\pie[sum=auto, text=legend, radius=5, color={colorTM}]{10.20/{Random \& stuff}}`)
	assert.NotContains(t, doc, "part_numbering")
	assert.Contains(t, doc, `Brake pads & \multicolumn{10}{l}{\emph{Not available}}`)
	assert.Contains(t, doc, `\multicolumn{11}{l}{\cellcolor{colorTM}\textbf{Random \& stuff}}`)

	// BOM
	assert.Contains(t, doc, `\chapter{Random \& stuff}`)
	assert.Contains(t, doc, `\hline\rowcolor[gray]{.9}{Cart} & \centering A1000 & \centering AA & \centering  & \raggedright  & \centering 1 & \raggedleft\$ 6.00 & \raggedleft\$ 6.00 & \centering\pageref{ct:TM-A1000-AA} & \centering & \centering\pageref{img:TM-A1000-AA-0}\tabularnewline\hline`)
	assert.Contains(t, doc, `Cup, holder & \centering 00001 & \centering AA & \centering Cart & \raggedright 50\% plastic & \centering 2 & \raggedleft\$ 2.10 & \raggedleft\$ 4.20`)
	assert.Contains(t, doc, `\centering\pageref{dwg:TM-00001-AA-0}--\pageref{dwg:TM-00001-AA-1}`)

	// Cost tables
	assert.Contains(t, doc, "\\subsection{cup, holder (TM-00001-AA)}\n\\label{ct:TM-00001-AA}")
	assert.Contains(t, doc, `\raggedright Cup, holder & \centering TM-00001-AA & \raggedleft\$ 2.10 & \centering 2 & \raggedleft\$ 4.20\tabularnewline`)
	assert.Contains(t, doc, `\centering 1.00e-03 $m^3$`)
	assert.Contains(t, doc, `\centering 0.500`)
	assert.Contains(t, doc, `\raggedleft \$ 2.00 / $cm$ & \centering 3.00 & \centering 1.00 & \raggedleft\$ 6.00`)
	assert.Contains(t, doc, `\centering 1 & \centering 3000 & \raggedleft\$ 0.10`)
	assert.Contains(t, doc, `\multicolumn{4}{r}{\textbf{Total}} & \raggedleft\textbf{\$ 4.20}`)
	assert.NotContains(t, doc, `\subsubsection*{Fasteners}`)

	// Drawings and pictures
	assert.Contains(t, doc, `\includepdf[pages={1}, addtolist={1,figure,cup holder (TM-00001-AA),dwg:TM-00001-AA-1}]{TM/drawings/TM-00001-AA-2.pdf}`)
	assert.Contains(t, doc, "\\label{img:TM-A1000-AA-0}\n\\begin{center}\n\\includegraphics[height=0.8\\textheight]{TM/pictures/TM-A1000-AA.jpg}")
}

func TestGeneratePartNumbering(t *testing.T) {
	t.Parallel()

	basepath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(basepath, "part_numbering.pdf"), nil, 0o644))

	data, err := New(nil).Generate(basepath, newMetadata(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), `\includegraphics[height=0.8\textheight]{part_numbering}`)
}

func TestGenerateUnknownCatalogueEntry(t *testing.T) {
	t.Parallel()

	metadata := newMetadata(t)
	metadata.Catalogue["TM"] = []bom.CatalogueEntry{{Name: "pedal", PartNumber: "TM-00009-AA"}}

	_, err := New(nil).Generate(t.TempDir(), metadata)
	assert.ErrorIs(t, err, bom.ErrNotFound)
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "049_McGill University_FSAEM_CR.tex")
	require.NoError(t, New(nil).WriteFile(output, dir, newMetadata(t)))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\begin{document}`)
}
