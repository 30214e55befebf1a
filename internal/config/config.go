// =============================================================================
// FSAE Cost Report - Configuration Module
// =============================================================================
//
// This module is responsible for loading the report metadata that lives next
// to the system directories.
//
// CONFIGURATION FILES (in the base path):
//   1. costreport.yaml:  Team, competition and the roster of active systems
//   2. introduction.txt: Introduction paragraphs, one per line (optional)
//   3. sae_parts.csv:    Fixed parts checklist, rows of label,name[,pn]
//
// EXAMPLE costreport.yaml:
//   costreport:
//     year: 2011
//     carnumber: 49
//     university: McGill University
//     teamname: McGill Racing Team
//     competitionname: Formula SAE Michigan
//     competitionabbrev: FSAEM
//     systems: [BR, EN]
//   BR:
//     order: 1
//     name: Brake System
//     colour: [153, 204, 255]
//
// Every problem is fatal: a broken configuration stops the run before any
// system is read.
//
// =============================================================================

package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/csvparser"
	"github.com/ginjaninja78/fsae-cost-report/internal/normalize"
	"github.com/ginjaninja78/fsae-cost-report/internal/partnumber"
)

const (
	// ConfigFile is the name of the metadata file in the base path.
	ConfigFile = "costreport.yaml"

	// IntroductionFile is the name of the introduction file in the base path.
	IntroductionFile = "introduction.txt"

	// CatalogueFile is the name of the fixed parts checklist in the base path.
	CatalogueFile = "sae_parts.csv"
)

// =============================================================================
// FILE STRUCTURE
// =============================================================================

// FileConfig is the content of costreport.yaml.
type FileConfig struct {
	// Report holds the global section.
	Report ReportConfig `yaml:"costreport"`

	// Systems holds one section per system, keyed by label. Sections of
	// labels missing from the roster are ignored.
	Systems map[string]SystemConfig `yaml:",inline"`
}

// ReportConfig is the global section of the configuration.
type ReportConfig struct {
	Year              int    `yaml:"year"`
	CarNumber         int    `yaml:"carnumber"`
	University        string `yaml:"university"`
	TeamName          string `yaml:"teamname"`
	CompetitionName   string `yaml:"competitionname"`
	CompetitionAbbrev string `yaml:"competitionabbrev"`

	// Roster lists the labels of the active systems.
	Roster []string `yaml:"systems"`
}

// SystemConfig is the section of one system.
type SystemConfig struct {
	// Order is the display order; systems sort by order, then label.
	Order int `yaml:"order"`

	// Name is the display name (e.g. "Brake System").
	Name string `yaml:"name"`

	// Colour is the RGB colour used in charts, three values in 0..255.
	Colour []int `yaml:"colour"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadConfig loads costreport.yaml.
//
// RETURNS:
//   - The parsed configuration with defaults applied.
//   - ErrMissingConfig if the file does not exist or a required global field
//     is missing; ErrInvalidSystemSection if a roster label has no valid
//     section.
func LoadConfig(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", bom.ErrMissingConfig, configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}

	return &config, nil
}

// applyDefaults normalizes the text fields and labels.
func applyDefaults(config *FileConfig) {
	r := &config.Report
	r.University = normalize.Cell(r.University)
	r.TeamName = normalize.Cell(r.TeamName)
	r.CompetitionName = normalize.Cell(r.CompetitionName)
	r.CompetitionAbbrev = normalize.Cell(r.CompetitionAbbrev)

	if r.TeamName == "" {
		r.TeamName = r.University
	}

	for i, label := range r.Roster {
		r.Roster[i] = strings.ToUpper(strings.TrimSpace(label))
	}

	if config.Systems == nil {
		return
	}
	for label, section := range config.Systems {
		upper := strings.ToUpper(label)
		if upper != label {
			delete(config.Systems, label)
			config.Systems[upper] = section
		}
	}
}

// validateConfig validates the global section and every roster section.
func validateConfig(config *FileConfig) error {
	r := config.Report

	switch {
	case r.Year <= 0:
		return fmt.Errorf("%w: costreport.year is required", bom.ErrMissingConfig)
	case r.CarNumber <= 0:
		return fmt.Errorf("%w: costreport.carnumber is required", bom.ErrMissingConfig)
	case r.University == "":
		return fmt.Errorf("%w: costreport.university is required", bom.ErrMissingConfig)
	case r.CompetitionAbbrev == "":
		return fmt.Errorf("%w: costreport.competitionabbrev is required", bom.ErrMissingConfig)
	case len(r.Roster) == 0:
		return fmt.Errorf("%w: costreport.systems is empty", bom.ErrMissingConfig)
	}

	seen := make(map[string]bool, len(r.Roster))
	for _, label := range r.Roster {
		if seen[label] {
			return fmt.Errorf("%w: %s is listed twice in costreport.systems", bom.ErrInvalidSystemSection, label)
		}
		seen[label] = true

		section, ok := config.Systems[label]
		if !ok {
			return fmt.Errorf("%w: no section for system %s", bom.ErrInvalidSystemSection, label)
		}
		if strings.TrimSpace(section.Name) == "" {
			return fmt.Errorf("%w: %s.name is required", bom.ErrInvalidSystemSection, label)
		}
		if len(section.Colour) != 3 {
			return fmt.Errorf("%w: %s.colour must have three values", bom.ErrInvalidSystemSection, label)
		}
		for _, c := range section.Colour {
			if c < 0 || c > 255 {
				return fmt.Errorf("%w: %s.colour value %d is out of range", bom.ErrInvalidSystemSection, label, c)
			}
		}
	}

	return nil
}

// =============================================================================
// METADATA
// =============================================================================

// LoadMetadata loads the configuration, the introduction and the catalogue
// from the base path.
//
// RETURNS:
//   - The metadata with its systems sorted and empty.
//   - An error if any file is missing or invalid.
func LoadMetadata(basepath string) (*bom.Metadata, error) {
	config, err := LoadConfig(filepath.Join(basepath, ConfigFile))
	if err != nil {
		return nil, err
	}

	systems, err := buildSystems(config)
	if err != nil {
		return nil, err
	}

	introduction, err := readIntroduction(filepath.Join(basepath, IntroductionFile))
	if err != nil {
		return nil, err
	}

	catalogue, err := readCatalogue(filepath.Join(basepath, CatalogueFile), config.Report.Roster)
	if err != nil {
		return nil, err
	}

	r := config.Report
	return &bom.Metadata{
		Year:              r.Year,
		CarNumber:         r.CarNumber,
		University:        r.University,
		TeamName:          r.TeamName,
		CompetitionName:   r.CompetitionName,
		CompetitionAbbrev: r.CompetitionAbbrev,
		Introduction:      introduction,
		Catalogue:         catalogue,
		Systems:           systems,
	}, nil
}

func buildSystems(config *FileConfig) ([]*bom.System, error) {
	systems := make([]*bom.System, 0, len(config.Report.Roster))

	for _, label := range config.Report.Roster {
		section := config.Systems[label]
		colour := bom.RGB{
			R: uint8(section.Colour[0]),
			G: uint8(section.Colour[1]),
			B: uint8(section.Colour[2]),
		}

		system, err := bom.NewSystem(section.Order, label, normalize.Cell(section.Name), colour)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", bom.ErrInvalidSystemSection, err)
		}
		systems = append(systems, system)
	}

	bom.SortSystems(systems)
	return systems, nil
}

// readIntroduction returns the non-blank lines of the introduction file. A
// missing file means no introduction.
func readIntroduction(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open introduction: %w", err)
	}
	defer file.Close()

	var paragraphs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := normalize.Cell(scanner.Text()); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read introduction: %w", err)
	}

	return paragraphs, nil
}

// readCatalogue reads the fixed parts checklist. Every roster label gets an
// entry, possibly empty; rows of other labels are skipped.
func readCatalogue(filePath string, roster []string) (map[string][]bom.CatalogueEntry, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", bom.ErrMissingConfig, filePath)
	}

	sheet, err := csvparser.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	catalogue := make(map[string][]bom.CatalogueEntry, len(roster))
	for _, label := range roster {
		catalogue[label] = []bom.CatalogueEntry{}
	}

	for i := range sheet.Rows {
		label := strings.ToUpper(sheet.Cell(i, 0))
		if _, ok := catalogue[label]; !ok {
			continue
		}

		entry := bom.CatalogueEntry{
			Name:       normalize.Cell(sheet.Cell(i, 1)),
			PartNumber: strings.ToUpper(sheet.Cell(i, 2)),
		}
		if entry.PartNumber != "" && !partnumber.IsValid(entry.PartNumber) {
			return nil, fmt.Errorf("%w: %q for %s (%s, row %d)",
				bom.ErrInvalidPartNumber, entry.PartNumber, entry.Name, filePath, i+1)
		}

		catalogue[label] = append(catalogue[label], entry)
	}

	return catalogue, nil
}
