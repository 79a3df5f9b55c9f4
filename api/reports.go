package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

type listReportsRequest struct {
	Company  string `form:"company"`
	Hotel    string `form:"hotel"`
	Status   string `form:"status" binding:"omitempty,oneof=approved rejected pending"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
}

type bookingsPageRequest struct {
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"pageSize,default=10"`
	SortBy    string `form:"sortBy,default=date_in"`
	SortOrder string `form:"sortOrder,default=asc"`
}

type exportRequest struct {
	Email     string `json:"email" binding:"required,email"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

type exportResponse struct {
	ID          string `json:"id"`
	ReportID    string `json:"report_id"`
	Email       string `json:"email"`
	SortBy      string `json:"sort_by"`
	SortOrder   string `json:"sort_order"`
	RequestedAt string `json:"requested_at"`
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

// Register mounts the report routes. exportMiddleware runs in front of the
// export endpoint only.
func (h *ReportHandler) Register(router *gin.RouterGroup, exportMiddleware ...gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/options/companies", h.companies)
	router.GET("/options/hotels", h.hotels)
	router.GET("/:id", h.get)
	router.GET("/:id/details", h.details)
	router.GET("/:id/bookings", h.bookings)
	router.POST("/:id/export", append(exportMiddleware, h.export)...)
}

func (h *ReportHandler) list(c *gin.Context) {
	var req listReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.ListReports(c.Request.Context(), domain.ReportFilter{
		Company:  req.Company,
		Hotel:    req.Hotel,
		Status:   domain.ReportStatus(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReportHandler) get(c *gin.Context) {
	report, err := h.service.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) details(c *gin.Context) {
	bookings, err := h.service.GetReportBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *ReportHandler) bookings(c *gin.Context) {
	var req bookingsPageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := domain.ParseSortOrder(req.SortOrder)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := h.service.GetReportBookingsPage(c.Request.Context(), domain.BookingsQuery{
		ReportID:  c.Param("id"),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    domain.SortField(req.SortBy),
		SortOrder: order,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ReportHandler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.RequestExport(c.Request.Context(), reports.ExportInput{
		ReportID:  c.Param("id"),
		Email:     req.Email,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, exportResponse{
		ID:          event.ID,
		ReportID:    event.ReportID,
		Email:       event.Email,
		SortBy:      event.SortBy,
		SortOrder:   event.SortOrder,
		RequestedAt: event.RequestedAt.UTC().Format(domain.TimestampLayout),
	})
}

func (h *ReportHandler) companies(c *gin.Context) {
	options, err := h.service.CompanyOptions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *ReportHandler) hotels(c *gin.Context) {
	options, err := h.service.HotelOptions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrExportUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
