package dto

import "fmt"

// Field names as they appear in exported records.
const (
	FieldPayDate          = "pay_date"
	FieldGrossPay         = "gross_pay"
	FieldTotalDeductions  = "total_deductions"
	FieldNetPay           = "net_pay"
	FieldBasePay          = "base_pay"
	FieldLocalityPay      = "locality_pay"
	FieldFSA              = "fsa"
	FieldDental           = "dental"
	FieldVision           = "vision"
	FieldMedicare         = "medicare"
	FieldHBI              = "hbi"
	FieldHSA              = "hsa"
	FieldFERS             = "fers"
	FieldFederalTax       = "federal_tax"
	FieldGLIBasicEmployee = "gli_basic_employee"
	FieldGLIOptC          = "gli_opt_c"
	FieldOASDI            = "oasdi"
	FieldTSP              = "tsp"
	FieldStateTax         = "state_tax"

	FieldCalculatedTotalDeductions = "calculated_total_deductions"
	FieldCalculatedNetPay          = "calculated_net_pay"
	FieldFilename                  = "filename"
)

// FieldNames lists every record field in canonical order.
var FieldNames = []string{
	FieldPayDate,
	FieldGrossPay,
	FieldTotalDeductions,
	FieldNetPay,
	FieldBasePay,
	FieldLocalityPay,
	FieldFSA,
	FieldDental,
	FieldVision,
	FieldMedicare,
	FieldHBI,
	FieldHSA,
	FieldFERS,
	FieldFederalTax,
	FieldGLIBasicEmployee,
	FieldGLIOptC,
	FieldOASDI,
	FieldTSP,
	FieldStateTax,
	FieldCalculatedTotalDeductions,
	FieldCalculatedNetPay,
}

type FieldKind int

const (
	KindText FieldKind = iota
	KindAmount
)

// FieldValue is either an ISO date string or an amount in cents.
type FieldValue struct {
	Kind  FieldKind
	Text  string
	Cents int64
}

func TextValue(s string) FieldValue {
	return FieldValue{Kind: KindText, Text: s}
}

func AmountValue(cents int64) FieldValue {
	return FieldValue{Kind: KindAmount, Cents: cents}
}

func (v FieldValue) String() string {
	if v.Kind == KindAmount {
		return FormatCents(v.Cents)
	}
	return v.Text
}

// Entry is a single present field of a record.
type Entry struct {
	Name  string
	Value FieldValue
}

// PaystubRecord holds the fields extracted from one payroll statement.
// Amounts are stored in cents so that summing deductions stays exact.
type PaystubRecord struct {
	Filename string `json:"filename,omitempty"`

	PayDate          *string `json:"pay_date,omitempty"`
	GrossPay         *int64  `json:"gross_pay,omitempty"`
	TotalDeductions  *int64  `json:"total_deductions,omitempty"`
	NetPay           *int64  `json:"net_pay,omitempty"`
	BasePay          *int64  `json:"base_pay,omitempty"`
	LocalityPay      *int64  `json:"locality_pay,omitempty"`
	FSA              *int64  `json:"fsa,omitempty"`
	Dental           *int64  `json:"dental,omitempty"`
	Vision           *int64  `json:"vision,omitempty"`
	Medicare         *int64  `json:"medicare,omitempty"`
	HBI              *int64  `json:"hbi,omitempty"`
	HSA              *int64  `json:"hsa,omitempty"`
	FERS             *int64  `json:"fers,omitempty"`
	FederalTax       *int64  `json:"federal_tax,omitempty"`
	GLIBasicEmployee *int64  `json:"gli_basic_employee,omitempty"`
	GLIOptC          *int64  `json:"gli_opt_c,omitempty"`
	OASDI            *int64  `json:"oasdi,omitempty"`
	TSP              *int64  `json:"tsp,omitempty"`
	StateTax         *int64  `json:"state_tax,omitempty"`

	CalculatedTotalDeductions *int64 `json:"calculated_total_deductions,omitempty"`
	CalculatedNetPay          *int64 `json:"calculated_net_pay,omitempty"`

	// NetPayDiscrepancy is calculated_net_pay - net_pay when they disagree.
	NetPayDiscrepancy *int64 `json:"net_pay_discrepancy,omitempty"`
	// Unresolved lists label paths whose value never resolved before input ran out.
	Unresolved []string `json:"unresolved,omitempty"`
}

func (r *PaystubRecord) textSlot(name string) **string {
	if name == FieldPayDate {
		return &r.PayDate
	}
	return nil
}

func (r *PaystubRecord) amountSlot(name string) **int64 {
	switch name {
	case FieldGrossPay:
		return &r.GrossPay
	case FieldTotalDeductions:
		return &r.TotalDeductions
	case FieldNetPay:
		return &r.NetPay
	case FieldBasePay:
		return &r.BasePay
	case FieldLocalityPay:
		return &r.LocalityPay
	case FieldFSA:
		return &r.FSA
	case FieldDental:
		return &r.Dental
	case FieldVision:
		return &r.Vision
	case FieldMedicare:
		return &r.Medicare
	case FieldHBI:
		return &r.HBI
	case FieldHSA:
		return &r.HSA
	case FieldFERS:
		return &r.FERS
	case FieldFederalTax:
		return &r.FederalTax
	case FieldGLIBasicEmployee:
		return &r.GLIBasicEmployee
	case FieldGLIOptC:
		return &r.GLIOptC
	case FieldOASDI:
		return &r.OASDI
	case FieldTSP:
		return &r.TSP
	case FieldStateTax:
		return &r.StateTax
	case FieldCalculatedTotalDeductions:
		return &r.CalculatedTotalDeductions
	case FieldCalculatedNetPay:
		return &r.CalculatedNetPay
	}
	return nil
}

// IsCalculated reports whether name is a derived field that captures may not write.
func IsCalculated(name string) bool {
	return name == FieldCalculatedTotalDeductions || name == FieldCalculatedNetPay
}

// Set stores a captured value. Calculated fields are rejected.
func (r *PaystubRecord) Set(name string, v FieldValue) error {
	if IsCalculated(name) {
		return fmt.Errorf("%w: %s is derived", ErrUnknownField, name)
	}
	switch v.Kind {
	case KindText:
		slot := r.textSlot(name)
		if slot == nil {
			if r.amountSlot(name) != nil {
				return fmt.Errorf("%w: %s expects an amount", ErrFieldKind, name)
			}
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		s := v.Text
		*slot = &s
	case KindAmount:
		slot := r.amountSlot(name)
		if slot == nil {
			if r.textSlot(name) != nil {
				return fmt.Errorf("%w: %s expects text", ErrFieldKind, name)
			}
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		c := v.Cents
		*slot = &c
	}
	return nil
}

// Amount returns the cents stored under name.
func (r *PaystubRecord) Amount(name string) (int64, bool) {
	slot := r.amountSlot(name)
	if slot == nil || *slot == nil {
		return 0, false
	}
	return **slot, true
}

// Get returns the value stored under name, including the filename.
func (r *PaystubRecord) Get(name string) (FieldValue, bool) {
	if name == FieldFilename {
		return TextValue(r.Filename), r.Filename != ""
	}
	if slot := r.textSlot(name); slot != nil {
		if *slot == nil {
			return FieldValue{}, false
		}
		return TextValue(**slot), true
	}
	if c, ok := r.Amount(name); ok {
		return AmountValue(c), true
	}
	return FieldValue{}, false
}

// Entries returns the present fields in canonical order. The filename is not included.
func (r *PaystubRecord) Entries() []Entry {
	entries := make([]Entry, 0, len(FieldNames))
	for _, name := range FieldNames {
		if v, ok := r.Get(name); ok {
			entries = append(entries, Entry{Name: name, Value: v})
		}
	}
	return entries
}

// FormatCents renders cents as a fixed-point decimal, e.g. -1234 -> "-12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
