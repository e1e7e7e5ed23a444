package models

// Record is one product row from a catalog CSV, keyed by header field name.
// A missing field reads as the empty string.
type Record map[string]string

// Canonical catalog field names.
const (
	FieldStyle     = "STYLE"
	FieldDesc      = "DESC"
	FieldVendorID  = "VENDOR_ID"
	FieldCategory  = "CATEGORY"
	FieldBrand     = "BRAND"
	FieldUPC       = "UPC_SKU_2"
	FieldPriceCase = "PRICE_CS"
	FieldPriceUnit = "PRICE_UNIT"
	FieldQOH       = "QOH_CASES"
	FieldSize      = "SIZE"
	FieldLot       = "LOT"
)

// FilterField pairs a catalog field with its display label.
type FilterField struct {
	ID    string
	Label string
}

// FilterFields lists the fields offered in the filter editor.
var FilterFields = []FilterField{
	{FieldStyle, "Style #"},
	{FieldDesc, "Description"},
	{FieldVendorID, "Vendor ID"},
	{FieldCategory, "Category"},
	{FieldUPC, "UPC"},
	{FieldPriceCase, "Case Price"},
	{FieldQOH, "Qty on Hand"},
}

func (r Record) Get(field string) string {
	return r[field]
}

func (r Record) Style() string {
	return r[FieldStyle]
}

func (r Record) Desc() string {
	return r[FieldDesc]
}

// StyleSet returns the set of style identifiers present in records.
func StyleSet(records []Record) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[r.Style()] = true
	}
	return set
}

// Styles returns the style identifier of every record, in order.
func Styles(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Style())
	}
	return out
}
