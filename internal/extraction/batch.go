package extraction

import (
	"fmt"

	"github.com/quotewise/factfinder/internal/common"
)

// SplitBatches partitions ordered page images into contiguous batches of at
// most size images each, preserving page order. The batch count is
// ceil(len(images)/size). Pure partitioning: batches alias the input slice.
func SplitBatches(images [][]byte, size int) ([][][]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no page images to batch: %w", common.ErrInvalidInput)
	}
	if size <= 0 {
		return nil, fmt.Errorf("batch size %d: %w", size, common.ErrInvalidInput)
	}
	batches := make([][][]byte, 0, (len(images)+size-1)/size)
	for start := 0; start < len(images); start += size {
		end := min(start+size, len(images))
		batches = append(batches, images[start:end])
	}
	return batches, nil
}
