package api

// ColumnMatch explains how one canonical field was bound to a sheet header.
type ColumnMatch struct {
	Header string  `json:"header"`
	Score  float64 `json:"score"`
	Exact  bool    `json:"exact"`
}

type DateRange struct {
	MinDate *string `json:"min_date"`
	MaxDate *string `json:"max_date"`
}

// UploadResponse is returned after a file was parsed into a session.
// Columns holds an entry per canonical field; null means the field was
// not found in the sheet.
type UploadResponse struct {
	SessionID     string                  `json:"session_id"`
	Filename      string                  `json:"filename"`
	Columns       map[string]*ColumnMatch `json:"columns_detected"`
	TotalRows     int                     `json:"total_rows"`
	ParsedRecords int                     `json:"parsed_records"`
	DroppedRows   int                     `json:"dropped_rows"`
	DateRange     DateRange               `json:"date_range"`
	SampleRows    []map[string]string     `json:"sample_rows"`
}
