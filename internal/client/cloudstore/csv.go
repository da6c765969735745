package cloudstore

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/cdot/divelog/internal/client/models"
)

// MarshalCSV serializes a record batch to RFC-4180 CSV text. Fields are
// quoted only when they contain a quote, comma, or newline; internal quotes
// are doubled.
func MarshalCSV(rows []models.Row) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to serialize record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to serialize batch: %w", err)
	}
	return sb.String(), nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		if value {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(value)
	}
}
