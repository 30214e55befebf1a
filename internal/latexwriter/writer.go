// =============================================================================
// FSAE Cost Report - LaTeX Writer Module
// =============================================================================
//
// This module generates the LaTeX source of the cost report from the systems
// read by the reader. The document is compiled next to the system
// directories, so drawings and pictures are referenced by relative path.
//
// DOCUMENT STRUCTURE:
//   \documentclass ... packages, page header, system colours
//   Front matter (roman page numbers):
//     Table of contents
//     Introduction            (two columns, one paragraph per line)
//     Cost Summary            (cost per system and kind, pie chart)
//     Standard Part Numbering (part_numbering.pdf when present)
//     SAE common parts        (the catalogue checklist)
//   One chapter per system (arabic page numbers):
//     BOM                     (one line per component, hierarchy order)
//     Cost Tables             (\label{ct:<pn>} per component)
//     Technical Drawings      (\includepdf, labels dwg:<pn>-<i>)
//     Pictures                (labels img:<pn>-<i>)
//   List of drawings
//
// PAGE REFERENCES:
//   After compilation the .aux file holds the page of every ct:<pn> label;
//   the eBOM writer reads them back for its "Details Page Number" column.
//
// =============================================================================

package latexwriter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/reader"
)

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains the options of the document.
type Options struct {
	// LogoFile is the image shown in the page header, relative to the base
	// path. Default: "logo.jpg"
	LogoFile string

	// PartNumberingFile is the page describing the part numbers, included
	// when it exists in the base path. Default: "part_numbering.pdf"
	PartNumberingFile string
}

// DefaultOptions returns the default document options.
func DefaultOptions() Options {
	return Options{
		LogoFile:          "logo.jpg",
		PartNumberingFile: "part_numbering.pdf",
	}
}

// Writer writes cost reports.
type Writer struct {
	logger  *zap.Logger
	options Options
}

// New creates a Writer with the default options. A nil logger disables
// logging.
func New(logger *zap.Logger) *Writer {
	return NewWithOptions(logger, DefaultOptions())
}

// NewWithOptions creates a Writer with custom options.
func NewWithOptions(logger *zap.Logger, options Options) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger, options: options}
}

// =============================================================================
// DOCUMENT GENERATION
// =============================================================================

// WriteFile generates the report and writes it to outputPath.
func (w *Writer) WriteFile(outputPath, basepath string, metadata *bom.Metadata) error {
	data, err := w.Generate(basepath, metadata)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	w.logger.Info("cost report written", zap.String("path", outputPath))
	return nil
}

// Generate returns the LaTeX source of the report.
//
// RETURNS:
//   - The document.
//   - An error if a catalogue entry names a component that was not read.
func (w *Writer) Generate(basepath string, metadata *bom.Metadata) ([]byte, error) {
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add(w.preamble(metadata)...)
	add("", `\begin{document}`, "")
	add(w.pageStyle(metadata)...)
	add("")
	add(renewCommands()...)
	add("")
	add(colours(metadata)...)
	add("")

	frontmatter, err := w.frontmatter(basepath, metadata)
	if err != nil {
		return nil, err
	}
	add(frontmatter...)
	add("")

	for _, system := range metadata.Systems {
		w.logger.Debug("writing system", zap.String("system", system.Label))
		add(systemChapter(system)...)
		add("")
	}

	add(
		`\renewcommand{\listfigurename}{List of Drawings}`,
		`\pdfbookmark[0]{List of Drawings}{listofdd}`,
		`\listoffigures`,
		"",
		`\end{document}`,
	)

	var buffer bytes.Buffer
	for _, line := range lines {
		buffer.WriteString(line)
		buffer.WriteByte('\n')
	}
	return buffer.Bytes(), nil
}

func (w *Writer) preamble(metadata *bom.Metadata) []string {
	return []string{
		`\documentclass[letterpaper,landscape]{report}`,
		`\usepackage[scaled]{helvet}`,
		`\renewcommand*\familydefault{\sfdefault}`,
		`\usepackage[T1]{fontenc}`,
		`\usepackage[top=3cm, bottom=3cm, right=1cm, left=1cm]{geometry}`,
		`\usepackage{graphicx}`,
		`\usepackage{multirow}`,
		`\usepackage{url}`,
		`\usepackage{amsmath}`,
		`\usepackage{longtable}`,
		`\usepackage{titlesec}`,
		`\usepackage{array}`,
		`\usepackage{colortbl}`,
		`\usepackage{multicol}`,
		`\usepackage{setspace}`,
		`\usepackage[final]{pdfpages}`,
		`\usepackage[english]{babel}`,
		`\usepackage[utf8]{inputenc}`,
		`\usepackage{fancyhdr}`,
		`\usepackage{pgf-pie}`,
		fmt.Sprintf(`\usepackage[pdftitle={Cost Report %d}, `, metadata.Year),
		fmt.Sprintf(`pdfsubject={%s}, `, Escape(metadata.CompetitionName)),
		fmt.Sprintf(`pdfauthor={%s}, `, Escape(metadata.TeamName)),
		`colorlinks=true, `,
		`linkcolor=blue, `,
		`pdfborder = 0 0 0, `,
		`pdfhighlight = /I, `,
		`pdfpagelabels]{hyperref}`,
	}
}

func (w *Writer) pageStyle(metadata *bom.Metadata) []string {
	head := fmt.Sprintf(`\lhead{\includegraphics[height=0.25cm]{%s}\hspace{10pt} %s -- %d Cost Report}`,
		w.options.LogoFile, Escape(metadata.TeamName), metadata.Year)

	return []string{
		`\pagestyle{fancy}`,
		`\fancyhf{}`,
		head,
		`\lfoot{\small\nouppercase{\leftmark}}`,
		`\rfoot{\thepage}`,
		`\fancypagestyle{plain}{`,
		`\fancyhf{}`,
		head,
		`\lfoot{\small\nouppercase{\leftmark}}`,
		`\rfoot{\thepage}}`,
	}
}

func renewCommands() []string {
	return []string{
		`\renewcommand{\chaptername}{\sffamily System}`,
		`\renewcommand{\thechapter}{\Alph{chapter}}`,
		`\titleformat*{\section}{\Large\sffamily\raggedright}`,
		`\renewcommand{\chaptermark}[1]{\markboth{\chaptername\ \thechapter:\ #1}{}}`,
		`\titlespacing{\subsubsection}{0pt}{*1}{*-1}`,
	}
}

// colours defines color<label> for every system.
func colours(metadata *bom.Metadata) []string {
	return lo.Map(metadata.Systems, func(s *bom.System, _ int) string {
		return fmt.Sprintf(`\definecolor{color%s}{rgb}{%f,%f,%f}`, s.Label,
			float64(s.Colour.R)/255, float64(s.Colour.G)/255, float64(s.Colour.B)/255)
	})
}

// =============================================================================
// FRONT MATTER
// =============================================================================

func (w *Writer) frontmatter(basepath string, metadata *bom.Metadata) ([]string, error) {
	lines := []string{
		`\pagenumbering{roman}`,
		"",
		`\setcounter{tocdepth}{1}`,
		`\tableofcontents`,
		`\pdfbookmark[0]{Contents}{contents}`,
		`\newpage`,
		`\setcounter{tocdepth}{4}`,
		"",
		`\newpage`,
		"",
	}

	lines = append(lines, introduction(metadata)...)
	lines = append(lines, `\newpage`, "")

	lines = append(lines, costSummary(metadata)...)
	lines = append(lines, `\newpage`, "")

	lines = append(lines, w.partNumbering(basepath)...)
	lines = append(lines, `\newpage`, "")

	checklist, err := catalogue(metadata)
	if err != nil {
		return nil, err
	}
	lines = append(lines, checklist...)
	lines = append(lines, `\newpage`, "")

	return append(lines, `\pagenumbering{arabic}`), nil
}

func introduction(metadata *bom.Metadata) []string {
	lines := []string{
		`\section{Introduction}`,
		`\doublespacing`,
		`\begin{multicols}{2}`,
	}
	for _, paragraph := range metadata.Introduction {
		lines = append(lines, Escape(paragraph), "")
	}
	return append(lines, `\end{multicols}`, `\singlespacing`)
}

// costSummary is the cost per system and kind, followed by a pie chart of the
// cost per system.
func costSummary(metadata *bom.Metadata) []string {
	rows := [][]string{header("System", "=Materials", "=Processes", "=Fasteners", "=Tooling", "=Total")}

	total := bom.Breakdown{}
	for _, system := range metadata.Systems {
		b := system.Breakdown()
		total = total.Add(b)

		rows = append(rows, []string{
			fmt.Sprintf(`\rowcolor{color%s}\raggedright %s`, system.Label, Escape(system.Name)),
			`\centering` + money(b.Materials),
			`\centering` + money(b.Processes),
			`\centering` + money(b.Fasteners),
			`\centering` + money(b.Toolings),
			`\centering` + money(b.Total()),
		})
	}

	bold := func(amount float64) string {
		return fmt.Sprintf(`\centering\textbf{%s}`, money(amount))
	}
	rows = append(rows, []string{
		`\hline\raggedright\textbf{Total Vehicle}`,
		bold(total.Materials),
		bold(total.Processes),
		bold(total.Fasteners),
		bold(total.Toolings),
		bold(total.Total()),
	})

	lines := []string{`\section{Cost Summary}`, `\renewcommand{\arraystretch}{1.5}`}
	lines = append(lines, Tabular(rows, longtable(summarySpec))...)
	lines = append(lines, `\renewcommand{\arraystretch}{1}`, `\newpage`)

	return append(lines, costChart(metadata)...)
}

// costChart draws a pgf-pie chart of the systems with a cost.
func costChart(metadata *bom.Metadata) []string {
	systems := lo.Filter(metadata.Systems, func(s *bom.System, _ int) bool {
		return s.Cost() > 0
	})
	if len(systems) == 0 {
		return nil
	}

	fills := lo.Map(systems, func(s *bom.System, _ int) string {
		return "color" + s.Label
	})
	slices := lo.Map(systems, func(s *bom.System, _ int) string {
		return fmt.Sprintf("%.2f/{%s}", s.Cost(), Escape(s.Name))
	})

	return []string{
		`\begin{center}`,
		`\begin{tikzpicture}`,
		fmt.Sprintf(`\pie[sum=auto, text=legend, radius=5, color={%s}]{%s}`,
			strings.Join(fills, ", "), strings.Join(slices, ", ")),
		`\end{tikzpicture}`,
		`\end{center}`,
	}
}

func (w *Writer) partNumbering(basepath string) []string {
	lines := []string{`\section{Standard Part Numbering}`}

	if _, err := os.Stat(filepath.Join(basepath, w.options.PartNumberingFile)); errors.Is(err, os.ErrNotExist) {
		return lines
	}

	stem := strings.TrimSuffix(w.options.PartNumberingFile, filepath.Ext(w.options.PartNumberingFile))
	return append(lines,
		`\begin{center}`,
		fmt.Sprintf(`\includegraphics[height=0.8\textheight]{%s}`, stem),
		`\end{center}`,
	)
}

// catalogue is the checklist of the SAE common parts, grouped by system.
func catalogue(metadata *bom.Metadata) ([]string, error) {
	rows := [][]string{bomHeader}

	for _, system := range metadata.Systems {
		rows = append(rows, []string{
			fmt.Sprintf(`\multicolumn{11}{l}{\cellcolor{color%s}\textbf{%s}}`, system.Label, Escape(system.Name)),
		})

		for _, entry := range metadata.Catalogue[system.Label] {
			if entry.PartNumber == "" {
				rows = append(rows, []string{
					text(entry.Name),
					`\multicolumn{10}{l}{\emph{Not available}}`,
				})
				continue
			}

			component, err := system.Component(entry.PartNumber)
			if err != nil {
				return nil, fmt.Errorf("catalogue entry %q: %w", entry.Name, err)
			}
			rows = append(rows, bomRow(component))
		}
	}

	lines := []string{
		`\section{SAE common parts}`,
		`\noindent\emph{As per SAE Appendix C3}`,
		`\renewcommand{\arraystretch}{1.1}`,
	}
	lines = append(lines, Tabular(rows, longtable(bomSpec))...)
	return append(lines, `\renewcommand{\arraystretch}{1}`), nil
}

// =============================================================================
// SYSTEMS
// =============================================================================

func systemChapter(system *bom.System) []string {
	hierarchy := system.Hierarchy()

	lines := []string{fmt.Sprintf(`\chapter{%s}`, Escape(system.Name)), `\newpage`, ""}

	// BOM
	rows := [][]string{bomHeader}
	for _, component := range hierarchy {
		rows = append(rows, bomRow(component))
	}
	lines = append(lines, `\section{BOM}`, `\renewcommand{\arraystretch}{1.1}`)
	lines = append(lines, Tabular(rows, longtable(bomSpec))...)
	lines = append(lines, `\renewcommand{\arraystretch}{1}`, `\newpage`, "")

	// Cost tables
	lines = append(lines, `\section{Cost Tables}`)
	for _, component := range hierarchy {
		lines = append(lines, costTables(component)...)
		lines = append(lines, `\newpage`)
	}
	lines = append(lines, `\newpage`, "")

	lines = append(lines, drawings(system, hierarchy)...)
	lines = append(lines, `\newpage`, "")

	lines = append(lines, pictures(system, hierarchy)...)
	return append(lines, `\newpage`, "")
}

func drawings(system *bom.System, hierarchy []*bom.Component) []string {
	lines := []string{
		`\section{Technical Drawings}`,
		"The technical drawings are in the following pages.",
	}

	for _, c := range hierarchy {
		// Commas would split the addtolist argument.
		name := Escape(strings.ReplaceAll(c.Name, ",", ""))
		pn := c.PartNumber()

		for i, drawing := range c.Drawings {
			file := path.Join(system.Label, reader.DrawingsDir, filepath.Base(drawing))
			lines = append(lines,
				fmt.Sprintf(`\includepdf[pages={1}, addtolist={1,figure,%s (%s),dwg:%s-%d}]{%s}`, name, pn, pn, i, file),
				fmt.Sprintf(`\addcontentsline{toc}{subsection}{%s (%s)}`, name, pn),
			)
		}
	}

	return lines
}

func pictures(system *bom.System, hierarchy []*bom.Component) []string {
	lines := []string{`\section{Pictures}`}

	for _, c := range hierarchy {
		pn := c.PartNumber()

		for i, picture := range c.Pictures {
			file := path.Join(system.Label, reader.PicturesDir, filepath.Base(picture))
			lines = append(lines,
				fmt.Sprintf(`\subsection{%s (%s)}`, Escape(c.Name), pn),
				fmt.Sprintf(`\label{img:%s-%d}`, pn, i),
				`\begin{center}`,
				fmt.Sprintf(`\includegraphics[height=0.8\textheight]{%s}`, file),
				`\end{center}`,
				`\newpage`,
			)
		}
	}

	return lines
}
