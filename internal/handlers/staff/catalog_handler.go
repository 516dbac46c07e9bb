package staff

import (
	"serendibgo/internal/services"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"

	"github.com/gin-gonic/gin"
)

func catalogFilters(c *gin.Context) *services.CatalogFilters {
	return &services.CatalogFilters{
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", utils.DefaultPageSize),
		Search:      c.Query("search"),
		Status:      c.DefaultQuery("status", "all"),
		Location:    c.Query("location"),
		Rating:      c.Query("rating"),
		Experience:  c.Query("experience"),
		VehicleType: c.Query("type"),
		FuelType:    c.Query("fuelType"),
		SortBy:      c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:   c.DefaultQuery("sortOrder", "desc"),
	}
}

type GuideHandler struct {
	guideService services.GuideService
}

func NewGuideHandler(guideService services.GuideService) *GuideHandler {
	return &GuideHandler{guideService: guideService}
}

func (h *GuideHandler) ListGuides(c *gin.Context) {
	result, err := h.guideService.ListGuides(c.Request.Context(), catalogFilters(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", result)
}

func (h *GuideHandler) GetStatistics(c *gin.Context) {
	stats, err := h.guideService.GetStatistics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", stats)
}

func (h *GuideHandler) DeleteGuide(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	if err := h.guideService.DeleteGuide(c.Request.Context(), c.Param("id"), principal.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Guide deleted successfully", nil)
}

func (h *GuideHandler) BulkAction(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.guideService.BulkAction(c.Request.Context(), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Bulk action completed", result)
}

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	result, err := h.vehicleService.ListVehicles(c.Request.Context(), catalogFilters(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", result)
}

func (h *VehicleHandler) GetStatistics(c *gin.Context) {
	stats, err := h.vehicleService.GetStatistics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", stats)
}

func (h *VehicleHandler) UpdateStatus(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.VehicleStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	vehicle, err := h.vehicleService.UpdateStatus(c.Request.Context(), c.Param("id"), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Vehicle status updated successfully", vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id"), principal.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Vehicle deleted successfully", nil)
}

func (h *VehicleHandler) BulkAction(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.vehicleService.BulkAction(c.Request.Context(), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Bulk action completed", result)
}

type HotelHandler struct {
	hotelService services.HotelService
}

func NewHotelHandler(hotelService services.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

func (h *HotelHandler) ListHotels(c *gin.Context) {
	result, err := h.hotelService.ListHotels(c.Request.Context(), catalogFilters(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", result)
}

func (h *HotelHandler) GetStatistics(c *gin.Context) {
	stats, err := h.hotelService.GetStatistics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", stats)
}

func (h *HotelHandler) CreateHotel(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.CreateHotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, "Hotel created successfully", hotel)
}

func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.UpdateHotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), c.Param("id"), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Hotel updated successfully", hotel)
}

func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	if err := h.hotelService.DeleteHotel(c.Request.Context(), c.Param("id"), principal.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Hotel deleted successfully", nil)
}

func (h *HotelHandler) BulkAction(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.hotelService.BulkAction(c.Request.Context(), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Bulk action completed", result)
}
