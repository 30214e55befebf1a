package ebom

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places amounts are written with.
const amountPlaces = 4

// WriteCSV writes the eBOM as CSV.
func WriteCSV(w io.Writer, report *Report) error {
	writer := csv.NewWriter(w)

	for i, row := range report.Rows() {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write eBOM row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return decimal.NewFromFloat(v).Round(amountPlaces).String()
	default:
		return fmt.Sprint(v)
	}
}
