package app

import (
	"archive/zip"
	"bytes"
	"image/color"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hsdlab/hsd-annotator/models"
)

func readArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("export is not a valid zip: %v", err)
	}
	return zr
}

func readSheetRows(t *testing.T, zr *zip.Reader) [][]string {
	t.Helper()

	f, err := zr.Open("hsd_annotations.xlsx")
	if err != nil {
		t.Fatalf("archive misses the annotation sheet: %v", err)
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		t.Fatalf("annotation sheet is not a valid workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Annotations")
	if err != nil {
		t.Fatalf("workbook misses the Annotations sheet: %v", err)
	}
	return rows
}

func TestBuildExportEmptyStore(t *testing.T) {
	store := openTestStore(t)
	masksRoot := filepath.Join(t.TempDir(), "_masks")

	data, err := BuildExport(store, masksRoot)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	zr := readArchive(t, data)
	if len(zr.File) != 1 {
		t.Errorf("empty store should yield only the sheet, got %d entries", len(zr.File))
	}

	rows := readSheetRows(t, zr)
	if len(rows) != 1 {
		t.Fatalf("expected header-only sheet, got %d rows", len(rows))
	}
	want := []string{"Folder", "Base_Filename", "Tag", "Mask_Saved", "Notes"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("header = %v, want %v", rows[0], want)
	}
}

func TestBuildExportRowsAndMasks(t *testing.T) {
	store := openTestStore(t)
	masksRoot := filepath.Join(t.TempDir(), "_masks")

	store.Upsert(models.AnnotationRecord{Folder: "A", BaseName: "s1", Tag: "Benign", Notes: "first"})
	store.Upsert(models.AnnotationRecord{Folder: "B", BaseName: "s1", Tag: "Discard"})
	// Rewrite of A/s1 moves it to the end and flips the mask flag.
	store.Upsert(models.AnnotationRecord{Folder: "A", BaseName: "s1", Tag: "Keep", MaskSaved: true, Notes: "ok"})

	if _, err := SaveMask(masksRoot, "A", "s1", pngBytes(t, color.RGBA{R: 255, A: 80})); err != nil {
		t.Fatalf("mask fixture failed: %v", err)
	}

	data, err := BuildExport(store, masksRoot)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	zr := readArchive(t, data)

	maskEntry := filepath.Base(masksRoot) + "/A/s1_mask.png"
	if _, err := zr.Open(maskEntry); err != nil {
		t.Errorf("archive misses mask entry %s: %v", maskEntry, err)
	}

	rows := readSheetRows(t, zr)
	want := [][]string{
		{"Folder", "Base_Filename", "Tag", "Mask_Saved", "Notes"},
		{"B", "s1", "Discard", "No"},
		{"A", "s1", "Keep", "Yes", "ok"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(rows), rows)
	}
	for i, row := range want {
		for j, cell := range row {
			if j >= len(rows[i]) || rows[i][j] != cell {
				t.Errorf("row %d = %v, want %v", i, rows[i], row)
				break
			}
		}
	}
}

func TestBuildExportStableAcrossCalls(t *testing.T) {
	store := openTestStore(t)
	masksRoot := filepath.Join(t.TempDir(), "_masks")

	store.Upsert(models.AnnotationRecord{Folder: "A", BaseName: "s1", Tag: "Keep", Notes: "ok"})

	first, err := BuildExport(store, masksRoot)
	if err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	second, err := BuildExport(store, masksRoot)
	if err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	rowsA := readSheetRows(t, readArchive(t, first))
	rowsB := readSheetRows(t, readArchive(t, second))
	if !reflect.DeepEqual(rowsA, rowsB) {
		t.Errorf("annotation content differs between exports: %v vs %v", rowsA, rowsB)
	}
}
