package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one sheet row keyed by original header text. Cells are the
// raw display strings the reader produced; typed interpretation happens in
// the normalizer.
type RawRecord map[string]string

// Source tells which side of the sheet a normalized record came from.
type Source string

const (
	SourceSO Source = "SO" // sales order, inbound
	SourceSI Source = "SI" // sales invoice, outbound
)

// NormalizedRecord is one side of a sheet row reduced to typed values.
// Date is always set (rows without a parseable date are dropped). Nil CBM
// and quantity fields mean "absent", which is distinct from a recorded zero.
type NormalizedRecord struct {
	Source   Source
	Date     time.Time
	TotalCBM *decimal.Decimal
	UnitCBM  *decimal.Decimal
	Quantity *int64
}

// DateRange is the calendar coverage of a dataset.
type DateRange struct {
	Min time.Time
	Max time.Time
}

// Dataset is the session-owned result of parsing one uploaded file.
// It is immutable after creation; analyze and export calls are pure
// functions over it.
type Dataset struct {
	Filename   string
	UploadedAt time.Time
	Columns    ColumnMap
	Records    []NormalizedRecord
	RowsRead   int
	Dropped    int
	DateRange  *DateRange
	SampleRows []RawRecord
}
