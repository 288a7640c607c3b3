package handlers

import (
	"net/http"

	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CarwashHandler holds the carwash income service.
type CarwashHandler struct {
	carwashService services.CarwashService
}

// NewCarwashHandler creates a new CarwashHandler.
func NewCarwashHandler(cs services.CarwashService) *CarwashHandler {
	return &CarwashHandler{carwashService: cs}
}

func (h *CarwashHandler) AddIncome(c *gin.Context) {
	var req services.AddIncomeRequest
	if !bindJSON(c, &req, "AddIncome") {
		return
	}

	income, err := h.carwashService.AddIncome(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "AddIncome: error from carwashService.AddIncome")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "carwash income recorded successfully", gin.H{"income": income})
}

func (h *CarwashHandler) ListIncome(c *gin.Context) {
	page, pageSize := pagination(c)

	result, err := h.carwashService.ListIncome(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "ListIncome: error from carwashService.ListIncome")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "carwash income fetched successfully", gin.H{
		"income":    result.Income,
		"total":     result.Total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *CarwashHandler) EditIncome(c *gin.Context) {
	incomeID, ok := pathID(c, "id", "income")
	if !ok {
		return
	}
	var req services.EditIncomeRequest
	if !bindJSON(c, &req, "EditIncome") {
		return
	}

	income, err := h.carwashService.EditIncome(c.Request.Context(), incomeID, req)
	if err != nil {
		respondServiceError(c, err, "EditIncome: error from carwashService.EditIncome")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "income entry updated successfully", gin.H{"income": income})
}

func (h *CarwashHandler) DeleteIncome(c *gin.Context) {
	incomeID, ok := pathID(c, "id", "income")
	if !ok {
		return
	}

	if err := h.carwashService.DeleteIncome(c.Request.Context(), incomeID); err != nil {
		respondServiceError(c, err, "DeleteIncome: error from carwashService.DeleteIncome")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "income entry deleted successfully", nil)
}
