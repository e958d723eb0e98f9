package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"demand-profile/internal/analysis"
	"demand-profile/internal/api/models"
	"demand-profile/internal/config"
	"demand-profile/internal/data"
	"demand-profile/internal/engine"
	"demand-profile/internal/model"
	"demand-profile/internal/targets"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Top peak days reported in the run summary.
const peakDayCount = 5

// GenerateHandler handles profile generation requests
type GenerateHandler struct {
	cache *data.ResultCache
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(cache *data.ResultCache) *GenerateHandler {
	return &GenerateHandler{cache: cache}
}

// RunGenerate handles POST /api/v1/generate
func (h *GenerateHandler) RunGenerate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	records, annual, rerr := h.loadInputs(req)
	if rerr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: *rerr})
		return
	}

	cfg := h.buildConfig(req)
	result, err := engine.New(cfg).Run(records, annual, nil)
	if err != nil {
		writeRunError(c, err)
		return
	}

	id := uuid.New().String()
	h.cache.Set(id, result)

	response := h.buildResponse(id, result, req.Options)
	c.JSON(http.StatusOK, response)
}

// StreamGenerate handles POST /api/v1/generate/stream. Progress events are
// streamed as SSE; the final event carries the run summary.
func (h *GenerateHandler) StreamGenerate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	records, annual, rerr := h.loadInputs(req)
	if rerr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: *rerr})
		return
	}

	cfg := h.buildConfig(req)

	events := make(chan engine.Event, 16)
	type outcome struct {
		result *engine.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := engine.New(cfg).Run(records, annual, events)
		close(events)
		done <- outcome{result, err}
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if ok {
			c.SSEvent("progress", models.ProgressEvent{
				Step:       ev.Step,
				TotalSteps: ev.TotalSteps,
				Message:    ev.Message,
				Percentage: ev.Percentage,
			})
			return true
		}
		out := <-done
		if out.err != nil {
			c.SSEvent("error", runErrorDetail(out.err))
			return false
		}
		id := uuid.New().String()
		h.cache.Set(id, out.result)
		c.SSEvent("result", h.buildResponse(id, out.result, req.Options))
		return false
	})
}

// GetResult handles GET /api/v1/generate/:id
func (h *GenerateHandler) GetResult(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RESULT_NOT_FOUND",
				Message: fmt.Sprintf("No cached result for run %q. Results expire; re-run the generation.", id),
			},
		})
		return
	}

	includeRows := c.Query("include_rows") == "true"
	response := h.buildResponse(id, result, models.GenerateOptions{IncludeRows: includeRows})
	c.JSON(http.StatusOK, response)
}

// Helper methods

func (h *GenerateHandler) loadInputs(req models.GenerateRequest) ([]model.HourlyRecord, targets.Annual, *models.ErrorDetail) {
	var path string
	switch req.DataSource.Type {
	case "csv":
		path = req.DataSource.Path
	case "registry":
		path = data.ResolveSource(req.DataSource.ID, data.GetDefaultSourcesPath())
	default:
		return nil, nil, &models.ErrorDetail{
			Code:    "INVALID_DATA_SOURCE",
			Message: fmt.Sprintf("unsupported data source type: %s", req.DataSource.Type),
		}
	}
	if path == "" {
		return nil, nil, &models.ErrorDetail{
			Code:    "INVALID_DATA_SOURCE",
			Message: "data source path is empty",
		}
	}

	records, err := data.LoadHistoryCSV(path)
	if err != nil {
		return nil, nil, &models.ErrorDetail{
			Code:    "DATA_LOAD_ERROR",
			Message: err.Error(),
		}
	}

	annual := targets.Annual{}
	for _, t := range req.Targets {
		annual[t.Year] = t.EnergyMWh
	}
	return records, annual, nil
}

func (h *GenerateHandler) buildConfig(req models.GenerateRequest) *config.Config {
	name := req.Profile.Name
	if name == "" {
		name = "api-run"
	}
	cfg := &config.Config{
		Profile: config.ProfileConfig{
			Name:              name,
			StartYear:         req.Profile.StartYear,
			EndYear:           req.Profile.EndYear,
			Method:            req.Profile.Method,
			BaseYear:          req.Profile.BaseYear,
			GrowthRateDefault: req.Profile.GrowthRateDefault,
			NoiseSeed:         req.Profile.NoiseSeed,
			HolidayDates:      req.Profile.HolidayDates,
		},
	}
	for _, con := range req.Constraints {
		cfg.Constraints = append(cfg.Constraints, config.MonthlyMaxConfig{
			Year:  con.Year,
			Month: con.Month,
			MaxMW: con.MaxMW,
		})
	}
	cfg.ApplyDefaults()
	return cfg
}

func (h *GenerateHandler) buildResponse(id string, result *engine.Result, opts models.GenerateOptions) models.GenerateResponse {
	response := models.GenerateResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(result),
	}
	if opts.IncludeRows {
		rows := result.Rows
		if opts.RowLimit > 0 && opts.RowLimit < len(rows) {
			rows = rows[:opts.RowLimit]
		}
		response.Rows = convertRows(rows)
	}
	return response
}

func buildSummary(result *engine.Result) models.GenerateSummary {
	summary := models.GenerateSummary{
		Profile:             result.ProfileName,
		Method:              result.Method,
		BaseYear:            result.BaseYear,
		BaseYearSubstituted: result.BaseYearSubstituted,
		TotalHours:          len(result.Rows),
		Validation:          convertReport(result.Validation),
	}
	if len(result.Rows) > 0 {
		summary.Window = models.TimeWindow{
			Start: result.Rows[0].DateTime,
			End:   result.Rows[len(result.Rows)-1].DateTime,
		}
	}
	for _, s := range analysis.ByYear(result.Rows) {
		summary.Years = append(summary.Years, models.YearSummary{
			FiscalYear: s.FiscalYear,
			Hours:      s.Hours,
			PeakMW:     s.PeakMW,
			MinMW:      s.MinMW,
			AverageMW:  s.AverageMW,
			TotalMWh:   s.TotalMWh,
			LoadFactor: s.LoadFactor,
		})
	}
	summary.Months = convertPeriods(analysis.ByFiscalMonth(result.Rows))
	summary.Seasons = convertPeriods(analysis.BySeason(result.Rows))
	for _, d := range analysis.RankPeakDays(result.Rows, peakDayCount) {
		summary.PeakDays = append(summary.PeakDays, models.PeakDay{
			Date:      d.Date,
			DayType:   string(d.DayType),
			PeakMW:    d.PeakMW,
			AverageMW: d.AverageMW,
		})
	}
	return summary
}

func convertPeriods(periods []analysis.PeriodSummary) []models.PeriodSummary {
	out := make([]models.PeriodSummary, len(periods))
	for i, s := range periods {
		out[i] = models.PeriodSummary{
			Label:      s.Label,
			Hours:      s.Hours,
			PeakMW:     s.PeakMW,
			MinMW:      s.MinMW,
			AverageMW:  s.AverageMW,
			TotalMWh:   s.TotalMWh,
			LoadFactor: s.LoadFactor,
		}
	}
	return out
}

func convertReport(report engine.Report) models.ValidationReport {
	out := models.ValidationReport{
		AllPass:           report.AllPass,
		OverallLoadFactor: report.OverallLoadFactor,
	}
	for _, y := range report.Years {
		out.Years = append(out.Years, models.YearCheck{
			Year:         y.Year,
			GeneratedMWh: y.GeneratedMWh,
			TargetMWh:    y.TargetMWh,
			ErrorPct:     y.ErrorPct,
			Pass:         y.Pass,
		})
	}
	return out
}

func convertRows(rows []model.ProfileRow) []models.ProfileRow {
	out := make([]models.ProfileRow, len(rows))
	for i, r := range rows {
		out[i] = models.ProfileRow{
			DateTime:    r.DateTime,
			FiscalYear:  r.FiscalYear,
			FiscalMonth: r.FiscalMonth,
			Season:      string(r.Season),
			DayType:     string(r.DayType),
			DemandMW:    r.DemandMW,
		}
	}
	return out
}

func writeRunError(c *gin.Context, err error) {
	detail := runErrorDetail(err)
	status := http.StatusInternalServerError
	switch detail.Code {
	case engine.CodeInvalidConfig, engine.CodeNoHistory:
		status = http.StatusBadRequest
	}
	log.Printf("GenerateHandler: run failed: %v", err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func runErrorDetail(err error) models.ErrorDetail {
	var re *engine.RunError
	if errors.As(err, &re) {
		return models.ErrorDetail{Code: re.Code, Message: re.Message, Details: re.Details}
	}
	return models.ErrorDetail{Code: engine.CodeSynthesisError, Message: err.Error()}
}
