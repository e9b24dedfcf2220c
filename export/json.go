package export

import (
	"encoding/json"
	"io"

	"github.com/Aashish23092/paystub-extraction/dto"
)

// WriteJSON writes records as an indented array, calculated fields included.
func WriteJSON(out io.Writer, records []dto.PaystubRecord) error {
	if records == nil {
		records = []dto.PaystubRecord{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
