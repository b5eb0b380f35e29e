package plan

import "fmt"

// FixedRanges slices a document into chunkSize-page ranges. The last chunk
// may be shorter. Used directly in pages mode and as the fallback when
// chapter detection fails.
func FixedRanges(totalPages, chunkSize int) ([]Range, error) {
	if chunkSize < 1 {
		return nil, ErrInvalidChunkSize
	}
	if totalPages < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	var ranges []Range
	for start := 0; start < totalPages; start += chunkSize {
		end := start + chunkSize
		if end > totalPages {
			end = totalPages
		}
		ranges = append(ranges, Range{
			Title: fmt.Sprintf("Chunk %03d (Pages %d-%d)", len(ranges)+1, start+1, end),
			Start: start,
			End:   end,
		})
	}
	return ranges, nil
}
