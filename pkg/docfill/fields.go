package docfill

// Field names filled in by the application rather than taken from a record.
// Record sources must not use them as headers.
const (
	FieldDocTemplateLabel  = "DOC_TEMPLATE_LABEL"
	FieldDocTemplateName   = "DOC_TEMPLATE_NAME"
	FieldDocTemplatePrefix = "DOC_TEMPLATE_PREFIX"
	FieldDateDay           = "DATE_DAY"
	FieldDateMonthLabel    = "DATE_MONTH_LABEL"
	FieldDateMonth         = "DATE_MONTH"
	FieldDateYear          = "DATE_YEAR"
	FieldExecutorLabel     = "EXECUTOR_LABEL"
	FieldDocNum            = "DOC_NUM"
	FieldAmount            = "AMOUNT"
	FieldAmountInt         = "AMOUNT_INT"
	FieldAmountText        = "AMOUNT_TEXT"
)

// ReservedFields returns the application field names in display order.
func ReservedFields() []string {
	return []string{
		FieldDocTemplateLabel,
		FieldDocTemplateName,
		FieldDocTemplatePrefix,
		FieldDateDay,
		FieldDateMonthLabel,
		FieldDateMonth,
		FieldDateYear,
		FieldExecutorLabel,
		FieldDocNum,
		FieldAmount,
		FieldAmountInt,
		FieldAmountText,
	}
}
