package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
	"github.com/flow-tools/cbm-insight/pkg/services/columns"
	"github.com/flow-tools/cbm-insight/pkg/services/normalize"
)

var (
	// ErrUnsupportedFile means the upload is not a recognizable .xlsx or
	// .xls file; it is rejected before the pipeline runs.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoData means the workbook held no sheet with a header row and
	// at least one data row.
	ErrNoData = errors.New("no table data found in workbook")
)

const sampleRowCount = 5

// Service turns an uploaded spreadsheet into a session dataset: raw rows
// in, column map plus normalized records out. The file content is not
// retained beyond the call.
type Service interface {
	Parse(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) Parse(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	var rows [][]string
	switch sniff(filename, content) {
	case kindXLSX:
		rows, err = readXLSX(content)
	case kindXLS:
		rows, err = readXLS(content)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	headers, dataRows, ok := splitHeader(rows)
	if !ok {
		return nil, ErrNoData
	}

	columnMap := columns.Resolve(headers)

	ds := &domain.Dataset{
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
		Columns:    columnMap,
		RowsRead:   len(dataRows),
	}

	for _, row := range dataRows {
		raw := toRawRecord(headers, row)
		if len(ds.SampleRows) < sampleRowCount {
			ds.SampleRows = append(ds.SampleRows, raw)
		}

		records, dropped := normalize.Record(raw, columnMap)
		ds.Dropped += dropped
		ds.Records = append(ds.Records, records...)
	}

	ds.DateRange = coverage(ds.Records)

	logger.Info().
		Str("filename", filename).
		Int("rows", ds.RowsRead).
		Int("records", len(ds.Records)).
		Int("dropped", ds.Dropped).
		Msg("spreadsheet parsed")

	return ds, nil
}

// readXLSX extracts the first sheet that looks like a data table. Raw
// cell values are requested so date cells surface as serial numbers
// instead of locale-formatted text.
func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			continue
		}
		if _, _, ok := splitHeader(rows); ok {
			return rows, nil
		}
	}
	return nil, ErrNoData
}

// readXLS goes through a temp file because the legacy reader only opens
// paths.
func readXLS(content []byte) ([][]string, error) {
	tmp, err := os.CreateTemp("", "upload-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	book, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, ErrNoData
	}

	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var cells []string
		for _, col := range xlsRow.GetCols() {
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// splitHeader finds the first row with any non-blank cell and treats it
// as the header; everything after it is data.
func splitHeader(rows [][]string) (headers []string, dataRows [][]string, ok bool) {
	for i, row := range rows {
		if !blankRow(row) {
			if i+1 >= len(rows) {
				return nil, nil, false
			}
			return row, rows[i+1:], true
		}
	}
	return nil, nil, false
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toRawRecord(headers []string, row []string) domain.RawRecord {
	raw := domain.RawRecord{}
	for i, h := range headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if i < len(row) {
			raw[h] = row[i]
		} else {
			raw[h] = ""
		}
	}
	return raw
}

func coverage(records []domain.NormalizedRecord) *domain.DateRange {
	if len(records) == 0 {
		return nil
	}
	r := &domain.DateRange{Min: records[0].Date, Max: records[0].Date}
	for _, rec := range records[1:] {
		if rec.Date.Before(r.Min) {
			r.Min = rec.Date
		}
		if rec.Date.After(r.Max) {
			r.Max = rec.Date
		}
	}
	return r
}
