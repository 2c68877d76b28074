package columns

import "github.com/flow-tools/cbm-insight/pkg/models/domain"

// Synonyms lists the accepted header spellings per canonical field, in
// priority order. Matching is insensitive to case, whitespace and
// punctuation, so only one spelling per word shape is needed here.
// The per-unit spellings are shared between the SO and SI side; sheets
// that carry a single "Per Unit CBM" column serve both.
var Synonyms = map[domain.Field][]string{
	domain.FieldSODate:     {"so date", "sales order date", "order date"},
	domain.FieldSOTotalCBM: {"so total cbm", "sales order total cbm", "total cbm", "so cbm"},
	domain.FieldSOUnitCBM:  {"so unit cbm", "per unit cbm", "unit cbm", "cbm per unit"},
	domain.FieldSOQty:      {"sales order qty", "so qty", "order qty", "quantity"},
	domain.FieldSIDate:     {"sales invoice date", "si date", "invoice date"},
	domain.FieldSITotalCBM: {"si total cbm", "sales invoice total cbm", "invoice cbm", "si cbm"},
	domain.FieldSIUnitCBM:  {"si unit cbm", "per unit cbm", "unit cbm", "cbm per unit"},
	domain.FieldSIQty:      {"sales invoice qty", "si qty", "invoice qty"},
}
