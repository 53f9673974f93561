package app

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/hsdlab/hsd-annotator/models"
)

const (
	exportSheetName = "Annotations"
	exportXLSXName  = "hsd_annotations.xlsx"
)

var exportColumns = []any{"Folder", "Base_Filename", "Tag", "Mask_Saved", "Notes"}

// BuildExport assembles the download bundle: the full annotation table as an
// xlsx sheet plus every file currently under masksRoot, paths kept relative
// to the masks root's parent. Built fresh on every call so it always reflects
// the store state at call time.
func BuildExport(store *Store, masksRoot string) ([]byte, error) {
	records, err := store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}

	sheet, err := buildAnnotationSheet(records)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(exportXLSXName)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive entry: %w", err)
	}
	if _, err := w.Write(sheet); err != nil {
		return nil, fmt.Errorf("failed to write annotation sheet: %w", err)
	}

	if err := addMaskFiles(zw, masksRoot); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// buildAnnotationSheet renders the table as a single-sheet workbook. An empty
// table still yields a valid header-only sheet.
func buildAnnotationSheet(records []models.AnnotationRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &exportColumns); err != nil {
		return nil, err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{rec.Folder, rec.BaseName, rec.Tag, maskSavedLabel(rec.MaskSaved), rec.Notes}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addMaskFiles(zw *zip.Writer, masksRoot string) error {
	info, err := os.Stat(masksRoot)
	if err != nil || !info.IsDir() {
		// Nothing annotated yet.
		return nil
	}

	prefix := filepath.Base(masksRoot)
	return filepath.WalkDir(masksRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(masksRoot, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read mask %s: %w", path, err)
		}

		w, err := zw.Create(filepath.ToSlash(filepath.Join(prefix, rel)))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
}

func maskSavedLabel(saved bool) string {
	if saved {
		return "Yes"
	}
	return "No"
}
