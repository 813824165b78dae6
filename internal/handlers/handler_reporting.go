package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles the admin reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", middleware.RequireRole(domain.RoleAdmin))
	{
		reports.GET("/outgoing", h.outgoing)
		reports.GET("/entered", h.entered)
		reports.GET("/dashboard", h.dashboard)
	}
}

// parseReportDate accepts a calendar date (server-local midnight) or an RFC3339 timestamp.
func parseReportDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(reportDateLayout, value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// reportPeriod binds and parses the startDate/endDate query parameters.
func reportPeriod(c *gin.Context) (dto.ReportParams, time.Time, time.Time, error) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return params, time.Time{}, time.Time{}, apperrors.NewValidationError("%s", bindErrorMessage(err))
	}
	if params.StartDate == "" || params.EndDate == "" {
		return params, time.Time{}, time.Time{}, apperrors.NewValidationError("Start date and end date are required")
	}
	from, err := parseReportDate(params.StartDate)
	if err != nil {
		return params, time.Time{}, time.Time{}, apperrors.NewValidationError("Invalid startDate, expected YYYY-MM-DD or RFC3339")
	}
	to, err := parseReportDate(params.EndDate)
	if err != nil {
		return params, time.Time{}, time.Time{}, apperrors.NewValidationError("Invalid endDate, expected YYYY-MM-DD or RFC3339")
	}
	return params, from, to, nil
}

// outgoing godoc
// @Summary Outgoing cars report
// @Description Lists cars that exited within the period and the total amount charged. The end date covers its whole day. Admin only.
// @Tags reports
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD or RFC3339)"
// @Param endDate query string true "End date (YYYY-MM-DD or RFC3339)"
// @Param parkingCode query string false "Restrict to one parking"
// @Success 200 {object} dto.OutgoingReportResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /reports/outgoing [get]
func (h *reportingHandler) outgoing(c *gin.Context) {
	params, from, to, err := reportPeriod(c)
	if err != nil {
		respondError(c, err, "Server error while generating report")
		return
	}
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	report, err := h.reportingService.OutgoingReport(c.Request.Context(), principal, from, to, params.ParkingCode)
	if err != nil {
		respondError(c, err, "Server error while generating report")
		return
	}
	c.JSON(http.StatusOK, dto.ToOutgoingReportResponse(report))
}

// entered godoc
// @Summary Entered cars report
// @Description Lists cars that entered within the period. The end date covers its whole day. Admin only.
// @Tags reports
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD or RFC3339)"
// @Param endDate query string true "End date (YYYY-MM-DD or RFC3339)"
// @Param parkingCode query string false "Restrict to one parking"
// @Success 200 {object} dto.EnteredReportResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /reports/entered [get]
func (h *reportingHandler) entered(c *gin.Context) {
	params, from, to, err := reportPeriod(c)
	if err != nil {
		respondError(c, err, "Server error while generating report")
		return
	}
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	report, err := h.reportingService.EnteredReport(c.Request.Context(), principal, from, to, params.ParkingCode)
	if err != nil {
		respondError(c, err, "Server error while generating report")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnteredReportResponse(report))
}

// dashboard godoc
// @Summary Dashboard statistics
// @Description Parkings, parked cars, today's revenue and occupancy. Admin only.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	stats, err := h.reportingService.Dashboard(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err, "Server error while fetching dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
