// =============================================================================
// Tributos - Workbook Reader
// =============================================================================
//
// This module reads XLSX workbooks from local disk into raw two-dimensional
// cell grids. It knows nothing about headers, column names or the meaning of
// any cell; that is the normalizer's job. Two layouts occur in practice:
//
//   - single-sheet annual tables, real header buried a few rows down
//   - multi-sheet workbooks where each sheet is named after a year and holds
//     one category row per tributo with twelve month columns
//
// =============================================================================

package workbook

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fazenda-digital/tributos/internal/types"
)

// RawSheet is a two-dimensional grid of cells read from one worksheet,
// exactly as excelize renders them. Rows may be ragged: trailing empty cells
// are not padded here.
type RawSheet struct {
	// Source is the workbook path the sheet was read from.
	Source string

	// Name is the worksheet name.
	Name string

	// Rows holds the cell grid, outer slice per row.
	Rows [][]string
}

// Workbook wraps an open XLSX file.
type Workbook struct {
	Path string

	file *excelize.File
}

// Open opens a workbook for reading. A non-existent path yields a
// *types.MissingFileError so callers can treat it as a dismissible warning
// rather than a fault.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &types.MissingFileError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}

	return &Workbook{Path: path, file: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the worksheet names in workbook order. For the
// evolution-style workbooks these are the available years.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet reads one worksheet into a RawSheet.
func (w *Workbook) Sheet(name string) (*RawSheet, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", name, w.Path, err)
	}
	return &RawSheet{Source: w.Path, Name: name, Rows: rows}, nil
}

// FirstSheet reads the first worksheet of the workbook. Annual sources are
// single-sheet tables, so this is their canonical access path.
func (w *Workbook) FirstSheet() (*RawSheet, error) {
	name := w.file.GetSheetName(0)
	if name == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", w.Path)
	}
	return w.Sheet(name)
}

// FileInfo describes a source workbook on disk, surfaced by the inspect
// command and used as the cache invalidation key.
type FileInfo struct {
	Path    string
	Exists  bool
	Size    int64
	ModTime time.Time
}

// Stat returns metadata for a workbook path. A missing file is reported via
// Exists=false, not an error.
func Stat(path string) FileInfo {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{Path: path}
	}
	return FileInfo{Path: path, Exists: true, Size: st.Size(), ModTime: st.ModTime()}
}
