// =============================================================================
// FSAE Cost Report - System Reader
// =============================================================================
//
// This module turns a system directory of flat per-component CSV files into a
// validated component graph.
//
// DIRECTORY LAYOUT:
//   <basepath>/<LABEL>/components/<pn>.csv   one file per part or assembly
//   <basepath>/<LABEL>/drawings/<pn>*.pdf    drawings, by part number prefix
//   <basepath>/<LABEL>/pictures/<pn>*.jpg    pictures, by part number prefix
//
// READ PIPELINE:
//   1. Check the directory layout
//   2. Clear the system
//   3. Read every system assembly file (recursively), quantity 1
//   4. Read every sub-assembly file not already pulled in as a child
//   5. Check that every component CSV, drawing and picture was attributed
//
// ERROR HANDLING:
//   Any failure aborts the read and leaves the system empty. Attribution
//   checks run together and are joined, so the operator sees every orphaned
//   file at once.
//
// =============================================================================

package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/partnumber"
	"github.com/ginjaninja78/fsae-cost-report/internal/validation"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// ComponentsDir holds the component CSV files of a system.
	ComponentsDir = "components"

	// DrawingsDir holds the drawings of a system.
	DrawingsDir = "drawings"

	// PicturesDir holds the pictures of a system.
	PicturesDir = "pictures"

	// ComponentExt is the extension of component files.
	ComponentExt = ".csv"

	// DrawingExt is the extension of drawing files.
	DrawingExt = ".pdf"

	// PictureExt is the extension of picture files.
	PictureExt = ".jpg"
)

// =============================================================================
// READER
// =============================================================================

// Reader reads systems, assemblies and parts from disk.
type Reader struct {
	logger *zap.Logger
}

// New creates a Reader. A nil logger disables logging.
func New(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

// session holds the state of one read pass over a system.
type session struct {
	*Reader

	system *bom.System

	// inProgress holds the assemblies whose parts list is being read.
	inProgress map[string]bool
}

func (r *Reader) newSession(system *bom.System) *session {
	return &session{
		Reader:     r,
		system:     system,
		inProgress: make(map[string]bool),
	}
}

// ReadSystem reads the system directory <basepath>/<label> into the system.
//
// PARAMETERS:
//   - basepath: The folder containing one directory per system.
//   - system: The system to fill. Its components are cleared first.
//
// RETURNS:
//   - An error if the directory layout is wrong, any file fails to parse or
//     validate, or some files on disk are not attributed to a component.
//     On error the system is left empty.
func (r *Reader) ReadSystem(basepath string, system *bom.System) error {
	systemDir := filepath.Join(basepath, system.Label)
	r.logger.Info("reading system", zap.String("system", system.Label), zap.String("dir", systemDir))

	system.ClearComponents()

	if err := r.readSystem(systemDir, system); err != nil {
		system.ClearComponents()
		return fmt.Errorf("system %s: %w", system.Label, err)
	}

	r.logger.Info("reading system done",
		zap.String("system", system.Label),
		zap.Int("components", system.Len()),
	)
	return nil
}

func (r *Reader) readSystem(systemDir string, system *bom.System) error {
	if err := checkDirStructure(systemDir); err != nil {
		return err
	}

	componentsDir := filepath.Join(systemDir, ComponentsDir)
	files, err := listFiles(componentsDir, ComponentExt)
	if err != nil {
		return fmt.Errorf("failed to list components: %w", err)
	}

	s := r.newSession(system)

	for _, file := range filterByKind(files, partnumber.KindSystemAssembly) {
		assembly, err := s.readAssembly(file)
		if err != nil {
			return err
		}
		// There is exactly one instance of the system assembly.
		assembly.SetStoredQuantity(1)
	}

	for _, file := range filterByKind(files, partnumber.KindSubAssembly) {
		if system.HasComponent(stem(file)) {
			continue
		}
		if _, err := s.readAssembly(file); err != nil {
			return err
		}
	}

	return checkAttribution(systemDir, system, files)
}

// ReadPart reads a single part file into the system.
func (r *Reader) ReadPart(filePath string, system *bom.System) (*bom.Component, error) {
	return r.newSession(system).readPart(filePath)
}

// ReadAssembly reads a single assembly file, and recursively its parts, into
// the system.
func (r *Reader) ReadAssembly(filePath string, system *bom.System) (*bom.Component, error) {
	return r.newSession(system).readAssembly(filePath)
}

// =============================================================================
// DIRECTORY CHECKS
// =============================================================================

// checkDirStructure verifies the three sub-directories of a system exist.
func checkDirStructure(systemDir string) error {
	for _, name := range []string{ComponentsDir, DrawingsDir, PicturesDir} {
		info, err := os.Stat(filepath.Join(systemDir, name))
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: directory %q is missing from %s", bom.ErrMissingDirectory, name, systemDir)
		}
	}
	return nil
}

// checkAttribution reports every component CSV, drawing and picture on disk
// that no component accounts for.
func checkAttribution(systemDir string, system *bom.System, componentFiles []string) error {
	components := system.Components()

	readFiles := lo.Map(components, func(c *bom.Component, _ int) string { return c.FilePath })
	drawings := lo.FlatMap(components, func(c *bom.Component, _ int) []string { return c.Drawings })
	pictures := lo.FlatMap(components, func(c *bom.Component, _ int) []string { return c.Pictures })

	// A missing listing was already reported by checkDirStructure.
	drawingFiles, _ := listFiles(filepath.Join(systemDir, DrawingsDir), DrawingExt)
	pictureFiles, _ := listFiles(filepath.Join(systemDir, PicturesDir), PictureExt)

	return errors.Join(
		validation.CheckAttributed("components", componentFiles, readFiles),
		validation.CheckAttributed("drawings", drawingFiles, drawings),
		validation.CheckAttributed("pictures", pictureFiles, pictures),
	)
}

// =============================================================================
// FILE HELPERS
// =============================================================================

// listFiles returns the sorted paths of the files with the extension.
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// filterByKind keeps the files whose name classifies as the kind.
func filterByKind(files []string, kind partnumber.Kind) []string {
	return lo.Filter(files, func(file string, _ int) bool {
		return partnumber.Matches(stem(file), kind)
	})
}

// findAttachments returns the files in dir named "<pn>*<ext>". A directory
// that cannot be read yields no attachments.
func (s *session) findAttachments(dir, pn, ext string) []string {
	files, err := listFiles(dir, ext)
	if err != nil {
		s.logger.Debug("attachments unavailable", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	found := lo.Filter(files, func(file string, _ int) bool {
		return strings.HasPrefix(filepath.Base(file), pn)
	})
	s.logger.Debug("attachments found", zap.String("dir", dir), zap.String("pn", pn), zap.Int("count", len(found)))
	return found
}

// stem returns the file name without directory and extension.
func stem(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
