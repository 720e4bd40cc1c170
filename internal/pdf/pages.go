package pdf

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/quotewise/factfinder/internal/common"
)

// Document is a parsed scanned fact finder: one image per scanned page, in
// page order.
type Document struct {
	PageCount int
	Images    [][]byte
}

// ReadPages parses a scanned PDF and extracts the scan image of every page.
// Fact finders are scanned forms, so each page is expected to carry exactly
// one full-page image XObject; when a page has several, the largest stream is
// taken as the scan and the rest (logos, stamps) are ignored. Pages without
// any image are skipped — they contribute no extractable pixels.
func ReadPages(data []byte, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload: %w", common.ErrInvalidInput)
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %v: %w", err, common.ErrInvalidInput)
	}

	doc := &Document{PageCount: ctx.PageCount}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		img, err := largestPageImage(ctx, pageNr)
		if err != nil {
			logger.Warn("pdf.page_image_failed", "page", pageNr, "error", err)
			continue
		}
		if img == nil {
			logger.Debug("pdf.page_without_image", "page", pageNr)
			continue
		}
		doc.Images = append(doc.Images, img)
	}

	if len(doc.Images) == 0 {
		return nil, fmt.Errorf("no scanned page images in %d-page document: %w",
			ctx.PageCount, common.ErrInvalidInput)
	}
	logger.Info("pdf.pages_read", "pages", doc.PageCount, "images", len(doc.Images))
	return doc, nil
}

func largestPageImage(ctx *model.Context, pageNr int) ([]byte, error) {
	images, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}

	// Deterministic order across the object-number map.
	objNrs := make([]int, 0, len(images))
	for objNr := range images {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var largest []byte
	for _, objNr := range objNrs {
		b, err := io.ReadAll(images[objNr])
		if err != nil {
			return nil, fmt.Errorf("read image stream obj %d: %w", objNr, err)
		}
		if len(b) > len(largest) {
			largest = b
		}
	}
	return largest, nil
}
