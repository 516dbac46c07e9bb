package staff

import (
	"serendibgo/internal/services"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	queryService   services.BookingQueryService
	bookingService services.BookingService
	reportService  services.ReportService
}

func NewBookingHandler(query services.BookingQueryService, bookings services.BookingService, reports services.ReportService) *BookingHandler {
	return &BookingHandler{queryService: query, bookingService: bookings, reportService: reports}
}

func bookingFilters(c *gin.Context) *services.BookingFilters {
	return &services.BookingFilters{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", utils.DefaultPageSize),
		Search:    c.Query("search"),
		Status:    c.DefaultQuery("status", "all"),
		Type:      c.DefaultQuery("type", "all"),
		DateFrom:  c.Query("dateFrom"),
		DateTo:    c.Query("dateTo"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}
}

// ListBookings returns tour, guide, hotel and vehicle bookings in one list.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	result, err := h.queryService.ListBookings(c.Request.Context(), bookingFilters(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", result)
}

func (h *BookingHandler) GetStatistics(c *gin.Context) {
	stats, err := h.bookingService.GetStatistics(c.Request.Context(), c.DefaultQuery("period", "30d"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", stats)
}

func (h *BookingHandler) GetConflicts(c *gin.Context) {
	conflicts, err := h.bookingService.GetConflicts(c.Request.Context(), c.Query("guideId"), c.Query("date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", gin.H{"conflicts": conflicts, "count": len(conflicts)})
}

// ExportBookings renders the filtered list as CSV and returns a download URL.
func (h *BookingHandler) ExportBookings(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	file, err := h.reportService.ExportBookings(c.Request.Context(), bookingFilters(c), principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Report generated successfully", file)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	details, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", details)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.CreateManualBooking(c.Request.Context(), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, "Booking created successfully", booking)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), c.Param("id"), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Booking updated successfully", booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.CancelBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id"), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}
