package filter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/aegisgate/aegis/internal/model"
)

var csvHeader = []string{"Timestamp", "Camera", "Person ID", "Access Type", "Status", "Confidence"}

// WriteCSV exports the given entries (typically the visible slice) as CSV.
// Confidence is rendered as a one-decimal percentage, or N/A when absent.
func WriteCSV(w io.Writer, entries []model.AccessLogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		record := []string{
			entry.Timestamp.Format(time.RFC3339),
			entry.CameraID,
			entry.PersonID,
			string(entry.AccessType),
			string(entry.AccessResult),
			formatConfidence(entry.Confidence),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatConfidence(c *float64) string {
	if c == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *c*100)
}
