package pdf

import (
	"errors"
	"testing"

	"github.com/quotewise/factfinder/internal/common"
)

func TestReadPages_EmptyUpload(t *testing.T) {
	_, err := ReadPages(nil, nil)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestReadPages_NotAPDF(t *testing.T) {
	_, err := ReadPages([]byte("definitely not a pdf"), nil)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
