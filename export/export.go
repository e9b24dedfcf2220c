// Package export renders parsed statements as CSV, JSON or XLSX.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aashish23092/paystub-extraction/dto"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Write renders records in format f.
func Write(f Format, out io.Writer, records []dto.PaystubRecord, opts Options) error {
	switch f {
	case FormatJSON:
		return WriteJSON(out, records)
	case FormatXLSX:
		return WriteXLSX(out, records, opts)
	case FormatCSV:
		return WriteCSV(out, records, opts)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}
