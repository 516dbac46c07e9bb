package staff

import (
	"serendibgo/internal/services"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService services.ApprovalService
}

func NewApprovalHandler(approvalService services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) ListPending(c *gin.Context) {
	result, err := h.approvalService.ListPending(c.Request.Context(), &services.PendingFilters{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", utils.DefaultPageSize),
		Role:   c.DefaultQuery("role", "all"),
		Search: c.Query("search"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", result)
}

func (h *ApprovalHandler) GetStatistics(c *gin.Context) {
	stats, err := h.approvalService.GetStatistics(c.Request.Context(), c.DefaultQuery("period", "30d"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", stats)
}

func (h *ApprovalHandler) GetDetails(c *gin.Context) {
	details, err := h.approvalService.GetApprovalDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", details)
}

func (h *ApprovalHandler) Approve(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.ApproveRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	user, err := h.approvalService.Approve(c.Request.Context(), c.Param("id"), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "User approved successfully", user)
}

func (h *ApprovalHandler) Reject(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.approvalService.Reject(c.Request.Context(), c.Param("id"), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "User rejected successfully", user)
}

// BulkApprove approves each listed user independently; one failure does not
// stop the rest.
func (h *ApprovalHandler) BulkApprove(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.BulkApproveRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.approvalService.BulkApprove(c.Request.Context(), &req, principal.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, result.Message(), result)
}
