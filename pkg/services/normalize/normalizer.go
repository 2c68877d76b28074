package normalize

import (
	"strings"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

// sideColumns groups the canonical fields belonging to one source side of
// a wide-format row.
type sideColumns struct {
	source   domain.Source
	date     domain.Field
	totalCBM domain.Field
	unitCBM  domain.Field
	qty      domain.Field
}

var sides = []sideColumns{
	{domain.SourceSO, domain.FieldSODate, domain.FieldSOTotalCBM, domain.FieldSOUnitCBM, domain.FieldSOQty},
	{domain.SourceSI, domain.FieldSIDate, domain.FieldSITotalCBM, domain.FieldSIUnitCBM, domain.FieldSIQty},
}

// Record converts one raw row into zero, one or two normalized records: a
// wide-format row can encode a sales-order side and a sales-invoice side
// on the same line, each evaluated against its own columns. The second
// return counts sides that carried data but could not be read (bad date
// or garbage in a numeric cell); blank sides are not drops.
func Record(raw domain.RawRecord, cm domain.ColumnMap) ([]domain.NormalizedRecord, int) {
	var out []domain.NormalizedRecord
	dropped := 0

	for _, side := range sides {
		rec, ok, bad := normalizeSide(raw, cm, side)
		if bad {
			dropped++
			continue
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, dropped
}

func normalizeSide(
	raw domain.RawRecord,
	cm domain.ColumnMap,
	side sideColumns,
) (rec domain.NormalizedRecord, ok bool, bad bool) {
	dateCell, present := cell(raw, cm, side.date)
	if !present || strings.TrimSpace(dateCell) == "" {
		// No date on this side: the row simply does not encode it.
		return rec, false, false
	}

	date, parsed := ParseDate(dateCell)
	if !parsed {
		return rec, false, true
	}

	rec = domain.NormalizedRecord{Source: side.source, Date: date}

	var err error
	if v, found := cell(raw, cm, side.totalCBM); found {
		if rec.TotalCBM, err = ParseDecimal(v); err != nil {
			return rec, false, true
		}
	}
	if v, found := cell(raw, cm, side.unitCBM); found {
		if rec.UnitCBM, err = ParseDecimal(v); err != nil {
			return rec, false, true
		}
	}
	if v, found := cell(raw, cm, side.qty); found {
		if rec.Quantity, err = ParseQuantity(v); err != nil {
			return rec, false, true
		}
	}
	return rec, true, false
}

func cell(raw domain.RawRecord, cm domain.ColumnMap, f domain.Field) (string, bool) {
	header, ok := cm.Header(f)
	if !ok {
		return "", false
	}
	v, ok := raw[header]
	return v, ok
}
