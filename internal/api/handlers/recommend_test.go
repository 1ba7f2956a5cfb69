package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"power-switch/internal/api/models"
	"power-switch/internal/config"
	"power-switch/internal/model"
	"power-switch/internal/store"
)

func testRouter(t *testing.T, st store.Store) (*gin.Engine, *RecommendHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	plans := []model.PlanDefinition{
		{Provider: "pazgas", PlanName: "night owl", WeekDaysApplicable: "Sunday-Thursday",
			HoursApplicable: "23:00-07:00", PricePercentageOff: 20},
		{Provider: "electra", PlanName: "always on", WeekDaysApplicable: "Monday-Sunday",
			HoursApplicable: "00:00-23:59", PricePercentageOff: 6},
		{Provider: "broken", PlanName: "bad schedule", WeekDaysApplicable: "Sunday-Thursday",
			HoursApplicable: "whenever", PricePercentageOff: 50},
	}
	h := NewRecommendHandler(cfg, plans, st)

	r := gin.New()
	r.POST("/api/v1/recommend", h.Upload)
	r.GET("/api/v1/recommend/:id/report.pdf", h.ReportPDF)
	return r, h
}

// meterExport renders a minimal export: a preamble, the Hebrew header,
// then one reading per day of January 2025 at 02:00 and 12:00.
func meterExport() string {
	var buf bytes.Buffer
	buf.WriteString("\"שם לקוח\",\"דנה כהן\"\n")
	buf.WriteString("\"מספר מונה\",\"23278570\"\n")
	buf.WriteString("\n")
	buf.WriteString("\"תאריך\",\"מועד תחילת הפעימה\",\"צריכה בקוט\"\"ש\"\n")
	buf.WriteString("\n")
	for day := 1; day <= 31; day++ {
		fmt.Fprintf(&buf, "\"%02d/01/2025\",\"02:00\",\"1.0\"\n", day)
		fmt.Fprintf(&buf, "\"%02d/01/2025\",\"12:00\",\"2.0\"\n", day)
	}
	return buf.String()
}

func uploadRequest(t *testing.T, filename, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("User-Agent", "power-switch-test")
	return req
}

func TestUploadHappyPath(t *testing.T) {
	st := store.NewMemory()
	r, _ := testRouter(t, st)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "meter_23278570_LP.csv", meterExport()))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "דנה כהן", resp.CustomerName)
	assert.Equal(t, "23278570", resp.MeterNumber)
	assert.Equal(t, 1, resp.ActiveMonths)

	require.Len(t, resp.Recommendations, 2, "malformed plan is skipped, not fatal")
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "broken", resp.Skipped[0].Provider)

	top := resp.Recommendations[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "electra", top.Provider)
	assert.Equal(t, "24/7", top.ApplicableHours, "always-on window collapses for display")
	assert.InDelta(t, 5.58, top.MonthlySavingsKWh, 0.01, "93 kWh * 6% / 1 month")

	require.Contains(t, resp.HourlyProfile, "2025-01")
	assert.Len(t, resp.HourlyProfile["2025-01"], 24)
	assert.Contains(t, resp.HourlyProfile, model.ProfileAverageKey)

	// The winning plan lands in the audit log.
	logged, err := st.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "electra", logged[0].SelectedProvider)
	assert.Equal(t, resp.ID, logged[0].ID)
	assert.Equal(t, "power-switch-test", logged[0].UserAgent)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	r, _ := testRouter(t, store.NewMemory())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "export.txt", "whatever"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_FILE_TYPE")
}

func TestUploadMissingFile(t *testing.T) {
	r, _ := testRouter(t, store.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_FILE")
}

func TestUploadNoDataSection(t *testing.T) {
	r, _ := testRouter(t, store.NewMemory())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "meter.csv", "a,b,c\n1,2,3\n"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_DATA_SECTION")
}

func TestUploadEmptySeries(t *testing.T) {
	r, _ := testRouter(t, store.NewMemory())

	export := "\"תאריך\",\"שעה\",\"צריכה\"\n\n"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "meter.csv", export))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_SERIES")
}

func TestReportPDFRoundTrip(t *testing.T) {
	r, _ := testRouter(t, store.NewMemory())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "meter.csv", meterExport()))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	pdfRec := httptest.NewRecorder()
	r.ServeHTTP(pdfRec, httptest.NewRequest(http.MethodGet, "/api/v1/recommend/"+resp.ID+"/report.pdf", nil))

	require.Equal(t, http.StatusOK, pdfRec.Code)
	assert.Equal(t, "application/pdf", pdfRec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", pdfRec.Body.String()[:4])
}

func TestReportPDFUnknownID(t *testing.T) {
	r, _ := testRouter(t, store.NewMemory())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommend/nope/report.pdf", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
