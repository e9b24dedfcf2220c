package paystub

import "github.com/Aashish23092/paystub-extraction/dto"

// DeductionFields are summed into calculated_total_deductions.
var DeductionFields = []string{
	dto.FieldFSA,
	dto.FieldDental,
	dto.FieldVision,
	dto.FieldMedicare,
	dto.FieldHBI,
	dto.FieldHSA,
	dto.FieldFERS,
	dto.FieldFederalTax,
	dto.FieldGLIBasicEmployee,
	dto.FieldGLIOptC,
	dto.FieldOASDI,
	dto.FieldTSP,
	dto.FieldStateTax,
}

// Reconcile derives the calculated deduction total and net pay. A missing
// gross or net pay rejects the document; a net pay mismatch is only reported.
func Reconcile(doc string, rec *dto.PaystubRecord, hooks Hooks) error {
	var total int64
	for _, f := range DeductionFields {
		if v, ok := rec.Amount(f); ok {
			total += v
		}
	}

	gross, ok := rec.Amount(dto.FieldGrossPay)
	if !ok {
		return &StructuralError{Document: doc, Err: ErrMissingGrossPay}
	}
	stated, ok := rec.Amount(dto.FieldNetPay)
	if !ok {
		return &StructuralError{Document: doc, Err: ErrMissingNetPay}
	}

	calculated := gross + total
	rec.CalculatedTotalDeductions = &total
	rec.CalculatedNetPay = &calculated

	if calculated != stated {
		d := Discrepancy{Document: doc, Stated: stated, Calculated: calculated}
		diff := d.Difference()
		rec.NetPayDiscrepancy = &diff
		hooks.discrepancy(d)
	}
	return nil
}
