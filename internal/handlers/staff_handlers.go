package handlers

import (
	"net/http"

	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaffMember registers a staff profile together with its login.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.RegisterStaffRequest
	if !bindJSON(c, &req, "CreateStaffMember") {
		return
	}

	staffMember, err := h.staffService.RegisterStaff(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateStaffMember: error from staffService.RegisterStaff")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "new staff and user profile created successfully", gin.H{
		"staff": staffMember,
	})
}

// DeleteStaffMember removes a staff profile and its login. Managers only.
func (h *StaffHandler) DeleteStaffMember(c *gin.Context) {
	staffID, ok := pathID(c, "id", "staff")
	if !ok {
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), actorFrom(c), staffID); err != nil {
		respondServiceError(c, err, "DeleteStaffMember: error from staffService.DeleteStaff")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "staff profile has been deleted successfully", nil)
}

// GetStaffMembers lists staff with pagination and an optional ?search= on
// name, phone or id number.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	page, pageSize := pagination(c)

	var search *string
	if term := c.Query("search"); term != "" {
		search = &term
	}

	result, err := h.staffService.ListStaff(c.Request.Context(), actorFrom(c), page, pageSize, search)
	if err != nil {
		respondServiceError(c, err, "GetStaffMembers: error from staffService.ListStaff")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "staff fetched successfully", gin.H{
		"staff":     result.Staff,
		"total":     result.Total,
		"page":      page,
		"page_size": pageSize,
	})
}
