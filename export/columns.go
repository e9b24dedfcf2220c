package export

import (
	"sort"
	"strings"

	"github.com/Aashish23092/paystub-extraction/dto"
)

// Options control tabular output.
type Options struct {
	// FilenameLast pins the filename column at the end instead of the start.
	FilenameLast bool
}

// leadingColumns are emitted first, in this order, when present.
var leadingColumns = []string{
	dto.FieldPayDate,
	dto.FieldGrossPay,
	dto.FieldTotalDeductions,
	dto.FieldNetPay,
	dto.FieldBasePay,
	dto.FieldLocalityPay,
}

func weight(name string) int {
	for i, c := range leadingColumns {
		if c == name {
			return i
		}
	}
	return len(leadingColumns)
}

// Columns returns the header for records: every field present in at least
// one record plus the filename, with calculated fields left out.
func Columns(records []dto.PaystubRecord, opts Options) []string {
	seen := map[string]bool{}
	var cols []string
	for i := range records {
		for _, e := range records[i].Entries() {
			if seen[e.Name] || strings.HasPrefix(e.Name, "calculated_") {
				continue
			}
			seen[e.Name] = true
			cols = append(cols, e.Name)
		}
	}

	sort.SliceStable(cols, func(i, j int) bool {
		wi, wj := weight(cols[i]), weight(cols[j])
		if wi != wj {
			return wi < wj
		}
		return cols[i] < cols[j]
	})

	if opts.FilenameLast {
		return append(cols, dto.FieldFilename)
	}
	return append([]string{dto.FieldFilename}, cols...)
}
