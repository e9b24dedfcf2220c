package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/paystub-extraction/dto"
)

func cents(v int64) *int64 { return &v }
func text(s string) *string { return &s }

func sampleRecords() []dto.PaystubRecord {
	return []dto.PaystubRecord{
		{
			Filename:                  "jan.pdf",
			PayDate:                   text("2024-01-12"),
			GrossPay:                  cents(400000),
			NetPay:                    cents(261700),
			Vision:                    cents(-1000),
			Dental:                    cents(-2500),
			BasePay:                   cents(320000),
			CalculatedTotalDeductions: cents(-138300),
			CalculatedNetPay:          cents(261700),
		},
		{
			Filename:    "feb.pdf",
			GrossPay:    cents(410050),
			NetPay:      cents(270000),
			LocalityPay: cents(80000),
			FederalTax:  cents(-40000),
		},
	}
}

func TestColumnsOrdering(t *testing.T) {
	cols := Columns(sampleRecords(), Options{})
	assert.Equal(t, []string{
		"filename",
		"pay_date", "gross_pay", "net_pay", "base_pay", "locality_pay",
		"dental", "federal_tax", "vision",
	}, cols)
}

func TestColumnsFilenameLast(t *testing.T) {
	cols := Columns(sampleRecords(), Options{FilenameLast: true})
	require.NotEmpty(t, cols)
	assert.Equal(t, "filename", cols[len(cols)-1])
	assert.Equal(t, "pay_date", cols[0])
	assert.NotContains(t, cols, "calculated_net_pay")
	assert.NotContains(t, cols, "calculated_total_deductions")
}

func TestColumnsEmpty(t *testing.T) {
	assert.Equal(t, []string{"filename"}, Columns(nil, Options{}))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords(), Options{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "filename", rows[0][0])
	assert.Equal(t, []string{"jan.pdf", "2024-01-12", "4000.00", "2617.00", "3200.00", "", "-25.00", "", "-10.00"}, rows[1])
	assert.Equal(t, []string{"feb.pdf", "", "4100.50", "2700.00", "", "800.00", "", "-400.00", ""}, rows[2])
}

func TestWriteJSONIncludesCalculatedFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()[:1]))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "jan.pdf", out[0]["filename"])
	assert.EqualValues(t, 261700, out[0]["calculated_net_pay"])
	assert.EqualValues(t, -138300, out[0]["calculated_total_deductions"])
	assert.NotContains(t, out[0], "locality_pay")
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords(), Options{FilenameLast: true}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "pay_date", rows[0][0])
	assert.Equal(t, "filename", rows[0][len(rows[0])-1])

	gross, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "4000", gross)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": FormatCSV, "JSON": FormatJSON, " xlsx ": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(FormatJSON, &buf, sampleRecords(), Options{}))
	assert.Equal(t, byte('['), buf.Bytes()[0])

	assert.Error(t, Write(Format("yaml"), &buf, nil, Options{}))
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
}
