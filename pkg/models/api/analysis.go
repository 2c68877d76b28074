package api

// AnalyzeRequest is the body of analyze and PDF export calls.
type AnalyzeRequest struct {
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
	GroupBy  string `json:"group_by,omitempty" validate:"omitempty,oneof=day week month"`
}

type Bucket struct {
	Date          string  `json:"date"`
	InboundCBM    float64 `json:"inbound_cbm"`
	OutboundCBMSI float64 `json:"outbound_cbm_si"`
	NetFlowCBM    float64 `json:"net_flow_cbm"`
	InboundQty    int64   `json:"inbound_qty"`
	OutboundQtySI int64   `json:"outbound_qty_si"`
	NetFlowQty    int64   `json:"net_flow_qty"`
}

type Totals struct {
	TotalInboundCBM    float64 `json:"total_inbound_cbm"`
	TotalOutboundCBMSI float64 `json:"total_outbound_cbm_si"`
	TotalNetFlowCBM    float64 `json:"total_net_flow_cbm"`
	TotalInboundQty    int64   `json:"total_inbound_qty"`
	TotalOutboundQtySI int64   `json:"total_outbound_qty_si"`
	TotalNetFlowQty    int64   `json:"total_net_flow_qty"`
}

// Peak reports the day holding the maximum value for a metric. Date is
// null when the metric was zero across the whole range.
type Peak struct {
	Date  *string `json:"date"`
	Value float64 `json:"value"`
}

type KPIs struct {
	PeakInboundCBMDay  Peak    `json:"peak_inbound_cbm_day"`
	PeakOutboundCBMDay Peak    `json:"peak_outbound_cbm_day"`
	PeakInboundQtyDay  Peak    `json:"peak_inbound_qty_day"`
	PeakOutboundQtyDay Peak    `json:"peak_outbound_qty_day"`
	AvgDailyNetFlowCBM float64 `json:"avg_daily_net_flow_cbm"`
	AvgDailyNetFlowQty float64 `json:"avg_daily_net_flow_qty"`
}

type AnalysisResult struct {
	Daily  []Bucket `json:"daily"`
	Totals Totals   `json:"totals"`
	KPIs   KPIs     `json:"kpis"`
}
