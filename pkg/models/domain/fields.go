package domain

// Field is a canonical semantic column in an uploaded sheet.
type Field string

const (
	FieldSODate     Field = "so_date"
	FieldSOTotalCBM Field = "so_total_cbm"
	FieldSOUnitCBM  Field = "so_unit_cbm"
	FieldSOQty      Field = "so_qty"
	FieldSIDate     Field = "si_date"
	FieldSITotalCBM Field = "si_total_cbm"
	FieldSIUnitCBM  Field = "si_unit_cbm"
	FieldSIQty      Field = "si_qty"
)

// Fields lists every canonical field in a stable order.
func Fields() []Field {
	return []Field{
		FieldSODate, FieldSOTotalCBM, FieldSOUnitCBM, FieldSOQty,
		FieldSIDate, FieldSITotalCBM, FieldSIUnitCBM, FieldSIQty,
	}
}

// ColumnMatch records how a canonical field was bound to a sheet header.
type ColumnMatch struct {
	Header string
	Score  float64
	Exact  bool
}

// ColumnMap binds canonical fields to the headers that matched them.
// A field absent from the map was not found in the sheet; that is not
// an error and downstream stages must tolerate it.
type ColumnMap map[Field]ColumnMatch

func (m ColumnMap) Header(f Field) (string, bool) {
	match, ok := m[f]
	return match.Header, ok
}
