package export

import (
	"encoding/csv"
	"io"

	"github.com/Aashish23092/paystub-extraction/dto"
)

// CSVWriter wraps csv.Writer for exporting parsed statements.
type CSVWriter struct {
	csv     *csv.Writer
	columns []string
}

func NewCSVWriter(w io.Writer, columns []string) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w), columns: columns}
}

func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(w.columns)
}

func (w *CSVWriter) WriteRecords(records []dto.PaystubRecord) error {
	for i := range records {
		if err := w.csv.Write(row(&records[i], w.columns)); err != nil {
			return err
		}
	}
	return nil
}

func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a header and one row per record.
func WriteCSV(out io.Writer, records []dto.PaystubRecord, opts Options) error {
	w := NewCSVWriter(out, Columns(records, opts))
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRecords(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// row renders rec under columns; absent fields are empty cells.
func row(rec *dto.PaystubRecord, columns []string) []string {
	cells := make([]string, len(columns))
	for i, name := range columns {
		if v, ok := rec.Get(name); ok {
			cells[i] = v.String()
		}
	}
	return cells
}
