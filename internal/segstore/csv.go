package segstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"vodsnip/internal/detect"
)

// WriteCSV serializes segments as the tabular result artifact consumed by
// clip extraction: one row per segment, columns identity, start_sec,
// end_sec, title.
func WriteCSV(w io.Writer, segments []detect.Segment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"identity", "start_sec", "end_sec", "title"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, segment := range segments {
		record := []string{
			segment.Identity,
			strconv.FormatFloat(segment.StartSec, 'f', -1, 64),
			strconv.FormatFloat(segment.EndSec, 'f', -1, 64),
			segment.Title,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
