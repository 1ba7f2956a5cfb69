package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"power-switch/internal/api/models"
	"power-switch/internal/audit"
	"power-switch/internal/config"
	"power-switch/internal/ingest"
	"power-switch/internal/model"
	"power-switch/internal/observability/metrics"
	"power-switch/internal/recommend"
	"power-switch/internal/report"
	"power-switch/internal/store"
)

// MaxUploadBytes caps meter export uploads.
const MaxUploadBytes = 16 << 20

// uploadField is the multipart form field carrying the meter export.
const uploadField = "consumption_file"

// RecommendHandler runs the analysis flow over uploaded meter exports.
type RecommendHandler struct {
	cfg   *config.Config
	plans []model.PlanDefinition
	store store.Store
	cache *analysisCache
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(cfg *config.Config, plans []model.PlanDefinition, st store.Store) *RecommendHandler {
	return &RecommendHandler{
		cfg:   cfg,
		plans: plans,
		store: st,
		cache: newAnalysisCache(30 * time.Minute),
	}
}

// Upload handles POST /api/v1/recommend.
func (h *RecommendHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	file, header, err := c.Request.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISSING_FILE",
				Message: "multipart field " + uploadField + " is required",
			},
		})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FILE_TYPE",
				Message: "please upload a .csv or .xlsx meter export",
			},
		})
		return
	}
	metrics.UploadBytes.Observe(float64(header.Size))

	start := time.Now()
	parsed, err := ingest.ParseFile(header.Filename, file)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("upload", "error").Inc()
		h.writeAnalysisError(c, err)
		return
	}

	resp, err := h.analyze(parsed, header.Filename)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("upload", "error").Inc()
		h.writeAnalysisError(c, err)
		return
	}
	metrics.AnalysesTotal.WithLabelValues("upload", "ok").Inc()

	h.logAnalysis(c, resp)
	c.JSON(http.StatusOK, resp)
}

// Demo handles GET /api/v1/demo using the bundled sample export.
func (h *RecommendHandler) Demo(c *gin.Context) {
	f, err := os.Open(h.cfg.SampleFile)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SAMPLE_NOT_FOUND",
				Message: "sample meter export is not available",
			},
		})
		return
	}
	defer f.Close()

	start := time.Now()
	parsed, err := ingest.ParseFile(h.cfg.SampleFile, f)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("demo", "error").Inc()
		h.writeAnalysisError(c, err)
		return
	}
	resp, err := h.analyze(parsed, filepath.Base(h.cfg.SampleFile))
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("demo", "error").Inc()
		h.writeAnalysisError(c, err)
		return
	}
	metrics.AnalysesTotal.WithLabelValues("demo", "ok").Inc()
	c.JSON(http.StatusOK, resp)
}

// ReportPDF handles GET /api/v1/recommend/:id/report.pdf for a recent
// analysis still held in the cache.
func (h *RecommendHandler) ReportPDF(c *gin.Context) {
	id := c.Param("id")
	resp, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ANALYSIS_NOT_FOUND",
				Message: "analysis expired or unknown; run the analysis again",
			},
		})
		return
	}

	rows := make([]report.Row, len(resp.Recommendations))
	for i, rec := range resp.Recommendations {
		rows[i] = report.Row{
			Rank:              rec.Rank,
			Provider:          rec.Provider,
			PlanName:          rec.PlanName,
			Days:              rec.ApplicableDays,
			Hours:             rec.ApplicableHours,
			DiscountPct:       rec.DiscountPct,
			MonthlySavingsKWh: rec.MonthlySavingsKWh,
			MonthlySavingsNIS: rec.MonthlySavingsNIS,
			BillSavingsPct:    rec.BillSavingsPct,
			CoveragePct:       rec.ApplicablePct,
		}
	}
	pdf, err := report.Build(report.Params{
		CustomerName: resp.CustomerName,
		MeterNumber:  resp.MeterNumber,
		Filename:     resp.Filename,
		GeneratedAt:  resp.GeneratedAt,
		ActiveMonths: resp.ActiveMonths,
		Rows:         rows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "REPORT_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="plan_recommendations.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// analyze runs the engine and builds the display payload.
func (h *RecommendHandler) analyze(parsed *ingest.Result, filename string) (models.RecommendResponse, error) {
	analysis, err := recommend.Recommend(parsed.Series, h.plans, recommend.Options{
		ActivityThreshold: h.cfg.Analysis.ActivityThreshold,
		ProfileMonths:     h.cfg.Analysis.ProfileMonths,
	})
	if err != nil {
		return models.RecommendResponse{}, err
	}
	metrics.PlansSkippedTotal.Add(float64(len(analysis.Skipped)))

	tariff := recommend.Tariff{
		RatePerKWh: h.cfg.Tariff.RatePerKWh,
		VATFactor:  h.cfg.Tariff.VATFactor,
	}

	resp := models.RecommendResponse{
		ID:            uuid.NewString(),
		Filename:      filename,
		CustomerName:  parsed.Meta.CustomerName,
		MeterNumber:   parsed.Meta.MeterNumber,
		GeneratedAt:   time.Now().UTC(),
		ActiveMonths:  len(analysis.ActiveMonths),
		HourlyProfile: analysis.Profile,
	}
	for i, ranked := range analysis.Ranked {
		resp.Recommendations = append(resp.Recommendations, models.RecommendationRow{
			Rank:                 i + 1,
			Provider:             ranked.Plan.Provider,
			PlanName:             ranked.Plan.PlanName,
			ApplicableDays:       models.HebrewDayRange(ranked.Plan.WeekDaysApplicable),
			ApplicableHours:      models.DisplayHours(ranked.Plan.HoursApplicable),
			DiscountPct:          ranked.Plan.PricePercentageOff,
			MonthlySavingsKWh:    models.Round2(ranked.Report.MonthlySavingsKWh),
			MonthlySavingsNIS:    models.Round2(tariff.NISFor(ranked.Report.MonthlySavingsKWh)),
			BillSavingsPct:       models.Round1(ranked.Report.BillSavingsPct),
			ApplicablePct:        models.Round1(ranked.Report.ApplicablePct),
			TotalDiscountedKWh:   models.Round2(ranked.Report.DiscountedKWh),
			ActiveMonthsAnalyzed: ranked.Report.NumActiveMonths,
			LogoFilename:         ranked.Plan.LogoFilename,
			ProviderURL:          ranked.Plan.ProviderURL,
		})
	}
	for _, skipped := range analysis.Skipped {
		resp.Skipped = append(resp.Skipped, models.SkippedPlan{
			Provider: skipped.Plan.Provider,
			PlanName: skipped.Plan.PlanName,
			Reason:   skipped.Reason,
		})
	}

	h.cache.Put(resp)
	return resp, nil
}

// logAnalysis records the winning plan in the audit log. Failures are
// logged and swallowed; auditing never fails the response.
func (h *RecommendHandler) logAnalysis(c *gin.Context, resp models.RecommendResponse) {
	if h.store == nil || len(resp.Recommendations) == 0 {
		return
	}
	top := resp.Recommendations[0]

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := h.store.Log(ctx, store.AnalysisRecord{
		ID:                   resp.ID,
		CustomerName:         resp.CustomerName,
		MeterNumber:          resp.MeterNumber,
		AnalyzedAt:           resp.GeneratedAt,
		SelectedProvider:     top.Provider,
		SelectedPlan:         top.PlanName,
		MonthlySavingsNIS:    top.MonthlySavingsNIS,
		MonthlySavingsKWh:    top.MonthlySavingsKWh,
		BillSavingsPct:       top.BillSavingsPct,
		ActiveMonthsAnalyzed: resp.ActiveMonths,
		Filename:             resp.Filename,
		IPAddress:            audit.ClientIP(c.Request),
		UserAgent:            c.Request.UserAgent(),
	})
	if err != nil {
		log.Printf("audit log failed for analysis %s: %v", resp.ID, err)
	}
}

// writeAnalysisError maps engine and ingestion failures onto the API
// error taxonomy.
func (h *RecommendHandler) writeAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommend.ErrEmptySeries):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EMPTY_SERIES",
				Message: "no consumption readings found in the export",
			},
		})
	case errors.Is(err, recommend.ErrNoActiveMonths):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_ACTIVE_MONTHS",
				Message: "no month passed the consumption activity threshold",
			},
		})
	case errors.Is(err, ingest.ErrNoDataSection):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_DATA_SECTION",
				Message: "could not locate the consumption table in the export",
			},
		})
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "PARSE_ERROR",
				Message: err.Error(),
			},
		})
	}
}
