package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AddDrinkRequest DTO
type AddDrinkRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Category      string          `json:"category" validate:"required,drinktype"`
	Stock         int             `json:"stock" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"gt=0,money"`
	Volume        string          `json:"volume" validate:"required,drinkvolume"`
	Markup        decimal.Decimal `json:"markup" validate:"gt=0,markup"`
	ShotPrice     decimal.Decimal `json:"shot_price" validate:"gte=0,money"`
	ShotQuantity  int             `json:"shot_quantity" validate:"gte=0"`
}

// EditDrinkRequest DTO. Nil fields are left untouched.
type EditDrinkRequest struct {
	Name          *string          `json:"name" validate:"omitnil,min=1,max=100"`
	Category      *string          `json:"category" validate:"omitnil,drinktype"`
	Stock         *int             `json:"stock" validate:"omitnil,gte=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitnil,gt=0,money"`
	Volume        *string          `json:"volume" validate:"omitnil,drinkvolume"`
	Markup        *decimal.Decimal `json:"markup" validate:"omitnil,gt=0,markup"`
	ShotPrice     *decimal.Decimal `json:"shot_price" validate:"omitnil,gte=0,money"`
	ShotQuantity  *int             `json:"shot_quantity" validate:"omitnil,gte=0"`
}

// RecordPurchaseRequest DTO
type RecordPurchaseRequest struct {
	Quantity        int             `json:"quantity" validate:"gt=0"`
	UnitPrice       decimal.Decimal `json:"unit_price" validate:"gt=0,money"`
	PaymentMethod   string          `json:"payment_method" validate:"required,paymentmethod"`
	ReferenceNumber *string         `json:"reference_number" validate:"omitnil,max=50"`
	Supplier        string          `json:"supplier" validate:"required,max=100"`
}

// StockMovementPage is one page of the stock audit trail.
type StockMovementPage struct {
	Movements []models.StockMovement `json:"movements"`
	Total     int                    `json:"total"`
}

// --- DrinkService Interface ---
type DrinkService interface {
	AddDrink(ctx context.Context, actor Actor, req AddDrinkRequest) (*models.Drink, error)
	ListDrinks(ctx context.Context) ([]models.DrinkListing, error)
	EditDrink(ctx context.Context, actor Actor, drinkID int64, req EditDrinkRequest) (*models.Drink, error)
	DeleteDrink(ctx context.Context, drinkID int64) error
	RecordPurchase(ctx context.Context, actor Actor, drinkID int64, req RecordPurchaseRequest) (*models.DrinkPurchase, error)
	ListStockMovements(ctx context.Context, filters models.StockMovementFilters) (*StockMovementPage, error)
}

// --- drinkService Implementation ---
type drinkService struct {
	drinkRepo    repositories.DrinkRepository
	purchaseRepo repositories.PurchaseRepository
	movementRepo repositories.InventoryMovementRepository
	staffRepo    repositories.StaffRepository
	tx           repositories.Transactor
}

// NewDrinkService creates a new instance of DrinkService.
func NewDrinkService(
	drinkRepo repositories.DrinkRepository,
	purchaseRepo repositories.PurchaseRepository,
	movementRepo repositories.InventoryMovementRepository,
	staffRepo repositories.StaffRepository,
	tx repositories.Transactor,
) DrinkService {
	return &drinkService{
		drinkRepo:    drinkRepo,
		purchaseRepo: purchaseRepo,
		movementRepo: movementRepo,
		staffRepo:    staffRepo,
		tx:           tx,
	}
}

func (s *drinkService) AddDrink(ctx context.Context, actor Actor, req AddDrinkRequest) (*models.Drink, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	drink := &models.Drink{
		Name:          req.Name,
		DrinkType:     req.Category,
		Stock:         req.Stock,
		PurchasePrice: req.PurchasePrice,
		Volume:        req.Volume,
		Markup:        req.Markup,
		ShotPrice:     req.ShotPrice,
		ShotQuantity:  req.ShotQuantity,
	}

	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		staffID, err := actorStaffID(ctx, exec, s.staffRepo, actor)
		if err != nil {
			return err
		}
		if _, err := s.drinkRepo.CreateDrink(ctx, exec, drink); err != nil {
			return writeError(err, "a drink with these details already exists", "creating drink")
		}
		if drink.Stock > 0 {
			return s.recordMovement(ctx, exec, drink.ID, staffID, models.MovementTypeInitialStock, drink.Stock, "drink added")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "adding drink")
	}

	zerolog.Ctx(ctx).Info().Int64("drink_id", drink.ID).
		Msgf("new drink %s, %s: %d units has been added", drink.Name, drink.Volume, drink.Stock)
	return drink, nil
}

func (s *drinkService) ListDrinks(ctx context.Context) ([]models.DrinkListing, error) {
	drinks, err := s.drinkRepo.ListDrinks(ctx, s.tx.Reader())
	if err != nil {
		return nil, storageError(err, "listing drinks")
	}

	listing := make([]models.DrinkListing, 0, len(drinks))
	for _, d := range drinks {
		listing = append(listing, models.DrinkListing{
			Drink:        d,
			SellingPrice: CatalogSellingPrice(d.PurchasePrice, d.Markup),
			RetailPrice:  RetailUnitPrice(d.PurchasePrice, d.Markup).Round(2),
		})
	}
	return listing, nil
}

func (s *drinkService) EditDrink(ctx context.Context, actor Actor, drinkID int64, req EditDrinkRequest) (*models.Drink, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var drink *models.Drink
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		drink, err = s.drinkRepo.GetDrinkForUpdate(ctx, exec, drinkID)
		if err != nil {
			return lookupError(err, "drink not found", "loading drink for edit")
		}
		previousStock := drink.Stock

		if req.Name != nil {
			drink.Name = *req.Name
		}
		if req.Category != nil {
			drink.DrinkType = *req.Category
		}
		if req.Stock != nil {
			drink.Stock = *req.Stock
		}
		if req.PurchasePrice != nil {
			drink.PurchasePrice = *req.PurchasePrice
		}
		if req.Volume != nil {
			drink.Volume = *req.Volume
		}
		if req.Markup != nil {
			drink.Markup = *req.Markup
		}
		if req.ShotPrice != nil {
			drink.ShotPrice = *req.ShotPrice
		}
		if req.ShotQuantity != nil {
			drink.ShotQuantity = *req.ShotQuantity
		}

		if err := s.drinkRepo.UpdateDrink(ctx, exec, drink); err != nil {
			return writeError(err, "a drink with these details already exists", "updating drink")
		}

		if delta := drink.Stock - previousStock; delta != 0 {
			staffID, err := actorStaffID(ctx, exec, s.staffRepo, actor)
			if err != nil {
				return err
			}
			return s.recordMovement(ctx, exec, drink.ID, staffID, models.MovementTypeAdjustment, delta, "stock edited")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "editing drink")
	}

	zerolog.Ctx(ctx).Info().Int64("drink_id", drinkID).Msg("drink details have been updated")
	return drink, nil
}

// DeleteDrink removes a drink that has no sales, purchases or open bottles.
// Its stock movements go with it.
func (s *drinkService) DeleteDrink(ctx context.Context, drinkID int64) error {
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		err := s.drinkRepo.DeleteDrink(ctx, exec, drinkID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repositories.ErrForeignKey):
			return &Error{kind: ErrConflict, msg: "drink has sales, purchases or open bottles and cannot be deleted", cause: err}
		default:
			return lookupError(err, "drink does not exist", "deleting drink")
		}
	})
	if err != nil {
		return storageError(err, "deleting drink")
	}

	zerolog.Ctx(ctx).Info().Int64("drink_id", drinkID).Msg("drink has been deleted")
	return nil
}

// RecordPurchase adds purchased bottles to stock. The unit price becomes the
// drink's purchase price.
func (s *drinkService) RecordPurchase(ctx context.Context, actor Actor, drinkID int64, req RecordPurchaseRequest) (*models.DrinkPurchase, error) {
	req.Supplier = strings.TrimSpace(req.Supplier)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var purchase *models.DrinkPurchase
	var drinkName string
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		drink, err := s.drinkRepo.GetDrinkForUpdate(ctx, exec, drinkID)
		if err != nil {
			return lookupError(err, "drink not found", "loading drink for purchase")
		}
		drinkName = drink.Name

		staffID, err := actorStaffID(ctx, exec, s.staffRepo, actor)
		if err != nil {
			return err
		}

		purchase, err = s.purchaseRepo.CreateDrinkPurchase(ctx, exec, &models.DrinkPurchase{
			DrinkID:         drink.ID,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			PaymentMethod:   req.PaymentMethod,
			ReferenceNumber: utils.NullStringFromPtr(req.ReferenceNumber),
			Supplier:        req.Supplier,
			RecordedBy:      staffID,
		})
		if err != nil {
			return writeError(err, msgDuplicateReference, "creating drink purchase")
		}

		if _, err := s.drinkRepo.UpdateStock(ctx, exec, drink.ID, req.Quantity); err != nil {
			return storageError(err, "adding purchased stock")
		}
		if err := s.drinkRepo.UpdatePurchasePrice(ctx, exec, drink.ID, req.UnitPrice); err != nil {
			return writeError(err, "drink could not be updated", "updating purchase price")
		}
		reason := fmt.Sprintf("purchase from %s", req.Supplier)
		return s.recordMovement(ctx, exec, drink.ID, staffID, models.MovementTypePurchase, req.Quantity, reason)
	})
	if err != nil {
		return nil, storageError(err, "recording purchase")
	}

	zerolog.Ctx(ctx).Info().Int64("drink_id", drinkID).Int("quantity", req.Quantity).
		Msgf("new purchase recorded for %s", drinkName)
	return purchase, nil
}

func (s *drinkService) ListStockMovements(ctx context.Context, filters models.StockMovementFilters) (*StockMovementPage, error) {
	if filters.MovementType != nil && *filters.MovementType != "" && !contains(movementTypes, *filters.MovementType) {
		return nil, validationError("movement type can only be %s", strings.Join(movementTypes, ", "))
	}

	movements, total, err := s.movementRepo.GetMovements(ctx, s.tx.Reader(), filters)
	if err != nil {
		return nil, storageError(err, "listing stock movements")
	}
	if movements == nil {
		movements = []models.StockMovement{}
	}
	return &StockMovementPage{Movements: movements, Total: total}, nil
}

var movementTypes = []string{
	models.MovementTypeInitialStock,
	models.MovementTypeAdjustment,
	models.MovementTypeSale,
	models.MovementTypeOpenBottle,
	models.MovementTypePurchase,
}

func (s *drinkService) recordMovement(ctx context.Context, exec repositories.SQLExecutor, drinkID int64, staffID *int64, movementType string, quantity int, reason string) error {
	return recordStockMovement(ctx, exec, s.movementRepo, drinkID, staffID, movementType, quantity, reason)
}

func recordStockMovement(ctx context.Context, exec repositories.SQLExecutor, repo repositories.InventoryMovementRepository, drinkID int64, staffID *int64, movementType string, quantity int, reason string) error {
	movement := &models.StockMovement{
		DrinkID:         drinkID,
		StaffID:         staffID,
		MovementType:    movementType,
		QuantityChanged: quantity,
	}
	if reason != "" {
		movement.Reason = &reason
	}
	if _, err := repo.CreateMovement(ctx, exec, movement); err != nil {
		return storageError(err, "recording stock movement")
	}
	return nil
}
