package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/extraction"
	"github.com/quotewise/factfinder/internal/repository"
)

func TestExportReviewXLSX_Auto(t *testing.T) {
	data := extraction.NewAutoData()
	data.Personal.OwnerFirstName = extraction.Text("John", extraction.ConfidenceHigh, false)
	data.Vehicles = append(data.Vehicles, extraction.Vehicle{
		VIN:  extraction.Text("1HGBH41JXMN109186", extraction.ConfidenceHigh, false),
		Make: extraction.Text("Toyota", extraction.ConfidenceMedium, false),
	})

	blob, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	rec := &repository.Extraction{
		ID:            uuid.New(),
		InsuranceType: constants.InsuranceAuto,
		Status:        constants.StatusCompleted,
		ExtractedData: blob,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	book, err := NewService(nil).ExportReviewXLSX(rec)
	if err != nil {
		t.Fatalf("ExportReviewXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(book))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Fact Finder"
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "Section" {
		t.Fatalf("A1 = %q, want Section", header)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	var sawName, sawVIN, sawNeedsReview bool
	for _, r := range rows[1:] {
		if len(r) < 3 {
			continue
		}
		switch {
		case r[1] == "Owner First Name" && r[2] == "John":
			sawName = true
		case r[1] == "VIN" && r[2] == "1HGBH41JXMN109186":
			sawVIN = true
		}
		if len(r) >= 5 && r[4] == "NEEDS REVIEW" {
			sawNeedsReview = true
		}
	}
	if !sawName || !sawVIN {
		t.Fatalf("missing expected rows (name=%v vin=%v)", sawName, sawVIN)
	}
	// Every untouched default field is flagged, so the review marker must
	// appear somewhere in the sheet.
	if !sawNeedsReview {
		t.Fatal("no NEEDS REVIEW marker for flagged fields")
	}
}

func TestExportReviewXLSX_NoData(t *testing.T) {
	rec := &repository.Extraction{ID: uuid.New(), InsuranceType: constants.InsuranceHome}
	if _, err := NewService(nil).ExportReviewXLSX(rec); err == nil {
		t.Fatal("want error for extraction without data")
	}
}
