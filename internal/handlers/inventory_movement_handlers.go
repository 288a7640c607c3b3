package handlers

import (
	"net/http"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RecordPurchase handles a stock delivery for a drink.
func (h *DrinkHandler) RecordPurchase(c *gin.Context) {
	drinkID, ok := pathID(c, "id", "drink")
	if !ok {
		return
	}
	var req services.RecordPurchaseRequest
	if !bindJSON(c, &req, "RecordPurchase") {
		return
	}

	purchase, err := h.drinkService.RecordPurchase(c.Request.Context(), actorFrom(c), drinkID, req)
	if err != nil {
		respondServiceError(c, err, "RecordPurchase: error from drinkService.RecordPurchase")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "drink purchase recorded successfully", gin.H{"purchase": purchase})
}

// GetStockMovements returns the stock audit trail, newest first. Optional
// filters: ?drink_id= and ?movement_type=.
func (h *DrinkHandler) GetStockMovements(c *gin.Context) {
	page, pageSize := pagination(c)
	filters := models.StockMovementFilters{Page: page, PageSize: pageSize}

	if raw := c.Query("drink_id"); raw != "" {
		drinkID, err := utils.StrToPositiveID(raw)
		if err != nil {
			utils.RespondValidationFailed(c, "invalid drink id")
			return
		}
		filters.DrinkID = &drinkID
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		filters.MovementType = &movementType
	}

	result, err := h.drinkService.ListStockMovements(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "GetStockMovements: error from drinkService.ListStockMovements")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "stock movements fetched successfully", gin.H{
		"movements": result.Movements,
		"total":     result.Total,
		"page":      page,
		"page_size": pageSize,
	})
}
