package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/flow-tools/cbm-insight/pkg/adapters"
	"github.com/flow-tools/cbm-insight/pkg/export"
	"github.com/flow-tools/cbm-insight/pkg/models/api"
	"github.com/flow-tools/cbm-insight/pkg/models/domain"
	analysissvc "github.com/flow-tools/cbm-insight/pkg/services/analysis"
	"github.com/flow-tools/cbm-insight/pkg/services/ingest"
	"github.com/flow-tools/cbm-insight/pkg/services/session"
)

type Handler struct {
	sessions session.Store
	ingest   ingest.Service
	analyzer analysissvc.Analyzer
	validate *validator.Validate
}

func NewHandler(sessions session.Store, ingestSvc ingest.Service, analyzer analysissvc.Analyzer) *Handler {
	return &Handler{
		sessions: sessions,
		ingest:   ingestSvc,
		analyzer: analyzer,
		validate: validator.New(),
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			renderError(w, r, api.ErrPayloadTooLarge(
				fmt.Sprintf("upload exceeds the %d byte limit", maxBytesErr.Limit)))
			return
		}
		renderError(w, r, api.ErrBadRequest("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	ds, err := h.ingest.Parse(ctx, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnsupportedFile):
			renderError(w, r, api.ErrUnsupportedFile("only .xlsx and .xls spreadsheets are supported"))
		case errors.Is(err, ingest.ErrNoData):
			renderError(w, r, api.ErrBadRequest("workbook contains no table data"))
		default:
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				renderError(w, r, api.ErrPayloadTooLarge(
					fmt.Sprintf("upload exceeds the %d byte limit", maxBytesErr.Limit)))
				return
			}
			logger.Error().Err(err).Str("filename", header.Filename).Msg("upload parsing failed")
			renderError(w, r, api.ErrBadRequest("could not read the uploaded spreadsheet"))
		}
		return
	}

	id := h.sessions.Create(ds)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, adapters.MapDatasetDomainToApi(id, ds))
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	ds, ok := h.dataset(r)
	if !ok {
		renderError(w, r, api.ErrSessionNotFound())
		return
	}

	var req api.AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, api.ErrBadRequest("invalid JSON body"))
		return
	}

	from, to, period, apiErr := h.resolveRange(req)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}

	result, err := h.analyzer.Analyze(ctx, ds, from, to, period)
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		renderError(w, r, api.ErrInternal("analysis failed"))
		return
	}

	render.JSON(w, r, adapters.MapAnalysisResultDomainToApi(result))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	ds, ok := h.dataset(r)
	if !ok {
		renderError(w, r, api.ErrSessionNotFound())
		return
	}

	req := api.AnalyzeRequest{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		GroupBy:  r.URL.Query().Get("group_by"),
	}
	from, to, period, apiErr := h.resolveRange(req)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}

	result, err := h.analyzer.Analyze(ctx, ds, from, to, period)
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		renderError(w, r, api.ErrInternal("analysis failed"))
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, adapters.MapAnalysisResultDomainToApi(result)); err != nil {
		logger.Error().Err(err).Msg("csv rendering failed")
		renderError(w, r, api.ErrInternal("csv export failed"))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cbm_analysis.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	ds, ok := h.dataset(r)
	if !ok {
		renderError(w, r, api.ErrSessionNotFound())
		return
	}

	var req api.AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, api.ErrBadRequest("invalid JSON body"))
		return
	}

	from, to, period, apiErr := h.resolveRange(req)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}

	result, err := h.analyzer.Analyze(ctx, ds, from, to, period)
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		renderError(w, r, api.ErrInternal("analysis failed"))
		return
	}

	// Render into a buffer first: a serialization failure must surface
	// as a request failure, not a half-written attachment.
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, adapters.MapAnalysisResultDomainToApi(result)); err != nil {
		logger.Error().Err(err).Msg("pdf rendering failed")
		renderError(w, r, api.ErrInternal("pdf export failed"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cbm_summary.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "session"))
	render.NoContent(w, r)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (h *Handler) dataset(r *http.Request) (*domain.Dataset, bool) {
	return h.sessions.Get(chi.URLParam(r, "session"))
}

// resolveRange validates and parses the shared analyze/export arguments.
// An inverted range is allowed; it produces an empty result downstream.
func (h *Handler) resolveRange(req api.AnalyzeRequest) (time.Time, time.Time, domain.Period, *api.Error) {
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return time.Time{}, time.Time{}, "", api.ErrValidation("invalid analyze request", fields)
		}
		return time.Time{}, time.Time{}, "", api.ErrBadRequest("invalid analyze request")
	}

	from, err := adapters.ParseDate(req.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, "", api.ErrBadRequest("date_from must be an ISO date")
	}
	to, err := adapters.ParseDate(req.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, "", api.ErrBadRequest("date_to must be an ISO date")
	}

	period, err := analysissvc.ParsePeriod(req.GroupBy)
	if err != nil {
		return time.Time{}, time.Time{}, "", api.ErrBadRequest(err.Error())
	}
	return from, to, period, nil
}

func renderError(w http.ResponseWriter, r *http.Request, e *api.Error) {
	_ = render.Render(w, r, e)
}
