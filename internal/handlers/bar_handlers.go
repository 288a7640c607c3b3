package handlers

import (
	"net/http"

	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DrinkHandler serves the bar: the drinks catalog, retail sales, open
// bottles and tot sales.
type DrinkHandler struct {
	drinkService services.DrinkService
	salesService services.SalesService
}

// NewDrinkHandler creates a new DrinkHandler.
func NewDrinkHandler(ds services.DrinkService, ss services.SalesService) *DrinkHandler {
	return &DrinkHandler{drinkService: ds, salesService: ss}
}

// AddDrink handles creation of a new catalog drink.
func (h *DrinkHandler) AddDrink(c *gin.Context) {
	var req services.AddDrinkRequest
	if !bindJSON(c, &req, "AddDrink") {
		return
	}

	drink, err := h.drinkService.AddDrink(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondServiceError(c, err, "AddDrink: error from drinkService.AddDrink")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "drink added successfully", gin.H{"drink": drink})
}

// ListDrinks returns the catalog with selling and retail prices.
func (h *DrinkHandler) ListDrinks(c *gin.Context) {
	drinks, err := h.drinkService.ListDrinks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ListDrinks: error from drinkService.ListDrinks")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "drinks fetched successfully", gin.H{"drinks": drinks})
}

// EditDrink applies a partial update to a drink.
func (h *DrinkHandler) EditDrink(c *gin.Context) {
	drinkID, ok := pathID(c, "id", "drink")
	if !ok {
		return
	}
	var req services.EditDrinkRequest
	if !bindJSON(c, &req, "EditDrink") {
		return
	}

	drink, err := h.drinkService.EditDrink(c.Request.Context(), actorFrom(c), drinkID, req)
	if err != nil {
		respondServiceError(c, err, "EditDrink: error from drinkService.EditDrink")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "drink details have been updated successfully", gin.H{"drink": drink})
}

// DeleteDrink removes a drink that has no sales or purchases recorded.
func (h *DrinkHandler) DeleteDrink(c *gin.Context) {
	drinkID, ok := pathID(c, "id", "drink")
	if !ok {
		return
	}

	if err := h.drinkService.DeleteDrink(c.Request.Context(), drinkID); err != nil {
		respondServiceError(c, err, "DeleteDrink: error from drinkService.DeleteDrink")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "drink has been deleted", nil)
}

// SellRetail records the sale of whole bottles.
func (h *DrinkHandler) SellRetail(c *gin.Context) {
	drinkID, ok := pathID(c, "id", "drink")
	if !ok {
		return
	}
	var req services.RetailSaleRequest
	if !bindJSON(c, &req, "SellRetail") {
		return
	}

	sale, err := h.salesService.SellRetail(c.Request.Context(), actorFrom(c), drinkID, req)
	if err != nil {
		respondServiceError(c, err, "SellRetail: error from salesService.SellRetail")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "sale recorded successfully", gin.H{"sale": sale})
}

// OpenBottle takes one bottle out of stock for selling by the shot.
func (h *DrinkHandler) OpenBottle(c *gin.Context) {
	drinkID, ok := pathID(c, "id", "drink")
	if !ok {
		return
	}

	bottle, err := h.salesService.OpenBottle(c.Request.Context(), actorFrom(c), drinkID)
	if err != nil {
		respondServiceError(c, err, "OpenBottle: error from salesService.OpenBottle")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "bottle opened successfully", gin.H{"open_bottle": bottle})
}

// ListOpenBottles returns every bottle currently being poured.
func (h *DrinkHandler) ListOpenBottles(c *gin.Context) {
	bottles, err := h.salesService.ListOpenBottles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ListOpenBottles: error from salesService.ListOpenBottles")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "open bottles fetched successfully", gin.H{"open_bottles": bottles})
}

// SellTot records shots poured from an open bottle.
func (h *DrinkHandler) SellTot(c *gin.Context) {
	bottleID, ok := pathID(c, "bottle_id", "bottle")
	if !ok {
		return
	}
	var req services.TotSaleRequest
	if !bindJSON(c, &req, "SellTot") {
		return
	}

	sale, err := h.salesService.SellTots(c.Request.Context(), actorFrom(c), bottleID, req)
	if err != nil {
		respondServiceError(c, err, "SellTot: error from salesService.SellTots")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "sale recorded successfully", gin.H{"tot_sale": sale})
}

// EditTotSale amends a shot sale, moving shots between bottles if needed.
func (h *DrinkHandler) EditTotSale(c *gin.Context) {
	saleID, ok := pathID(c, "id", "sale")
	if !ok {
		return
	}
	var req services.EditTotSaleRequest
	if !bindJSON(c, &req, "EditTotSale") {
		return
	}

	sale, err := h.salesService.EditTotSale(c.Request.Context(), saleID, req)
	if err != nil {
		respondServiceError(c, err, "EditTotSale: error from salesService.EditTotSale")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "sale record has been edited successfully", gin.H{"tot_sale": sale})
}
