package services

import (
	"context"
	"errors"
	"sort"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/pkg/utils"

	"github.com/rs/zerolog"
)

// RetailSaleRequest DTO
type RetailSaleRequest struct {
	Quantity        int     `json:"quantity" validate:"gt=0"`
	PaymentMethod   string  `json:"payment_method" validate:"required,paymentmethod"`
	ReferenceNumber *string `json:"reference_number" validate:"omitnil,max=50"`
}

// TotSaleRequest DTO
type TotSaleRequest struct {
	ShotQuantity    int     `json:"shot_quantity" validate:"gt=0"`
	PaymentMethod   string  `json:"payment_method" validate:"required,paymentmethod"`
	ReferenceNumber *string `json:"reference_number" validate:"omitnil,max=50"`
}

// EditTotSaleRequest DTO. Nil fields are left untouched; an empty
// reference_number clears it.
type EditTotSaleRequest struct {
	BottleID        *int64  `json:"bottle_id" validate:"omitnil,gt=0"`
	ShotQuantity    *int    `json:"shot_quantity" validate:"omitnil,gt=0"`
	PaymentMethod   *string `json:"payment_method" validate:"omitnil,paymentmethod"`
	ReferenceNumber *string `json:"reference_number" validate:"omitnil,max=50"`
}

// --- SalesService Interface ---
type SalesService interface {
	SellRetail(ctx context.Context, actor Actor, drinkID int64, req RetailSaleRequest) (*models.DrinkSale, error)
	OpenBottle(ctx context.Context, actor Actor, drinkID int64) (*models.OpenBottle, error)
	ListOpenBottles(ctx context.Context) ([]models.OpenBottleListing, error)
	SellTots(ctx context.Context, actor Actor, bottleID int64, req TotSaleRequest) (*models.TotSale, error)
	EditTotSale(ctx context.Context, saleID int64, req EditTotSaleRequest) (*models.TotSale, error)
}

// --- salesService Implementation ---
type salesService struct {
	drinkRepo    repositories.DrinkRepository
	bottleRepo   repositories.OpenBottleRepository
	salesRepo    repositories.SalesRepository
	movementRepo repositories.InventoryMovementRepository
	staffRepo    repositories.StaffRepository
	tx           repositories.Transactor
}

// NewSalesService creates a new instance of SalesService.
func NewSalesService(
	drinkRepo repositories.DrinkRepository,
	bottleRepo repositories.OpenBottleRepository,
	salesRepo repositories.SalesRepository,
	movementRepo repositories.InventoryMovementRepository,
	staffRepo repositories.StaffRepository,
	tx repositories.Transactor,
) SalesService {
	return &salesService{
		drinkRepo:    drinkRepo,
		bottleRepo:   bottleRepo,
		salesRepo:    salesRepo,
		movementRepo: movementRepo,
		staffRepo:    staffRepo,
		tx:           tx,
	}
}

var (
	errOutOfStock       = domainError("drink is currently not in stock")
	errNotEnoughStock   = domainError("not enough bottles in stock")
	errNotEnoughShots   = domainError("insufficient shots remaining in the selected bottle")
	errNotSoldByTheShot = domainError("drink has no shot quantity and cannot be opened")
)

// SellRetail sells sealed bottles at the VAT inclusive retail price.
func (s *salesService) SellRetail(ctx context.Context, actor Actor, drinkID int64, req RetailSaleRequest) (*models.DrinkSale, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var sale *models.DrinkSale
	var drinkName string
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		staff, err := s.staffRepo.GetStaffMemberByUserID(ctx, exec, actor.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNoStaffProfile
			}
			return storageError(err, "loading seller")
		}

		drink, err := s.drinkRepo.GetDrinkForUpdate(ctx, exec, drinkID)
		if err != nil {
			return lookupError(err, "drink not found", "locking drink for sale")
		}
		drinkName = drink.Name
		if drink.Stock == 0 {
			return errOutOfStock
		}
		if req.Quantity > drink.Stock {
			return errNotEnoughStock
		}

		sale, err = s.salesRepo.CreateDrinkSale(ctx, exec, &models.DrinkSale{
			DrinkID:         drink.ID,
			Quantity:        req.Quantity,
			SaleType:        models.SaleTypeRetail,
			PaymentMethod:   req.PaymentMethod,
			ReferenceNumber: utils.NullStringFromPtr(req.ReferenceNumber),
			Amount:          RetailSaleAmount(drink.PurchasePrice, drink.Markup, req.Quantity),
			SoldBy:          &staff.ID,
		})
		if err != nil {
			return writeError(err, msgDuplicateReference, "creating drink sale")
		}

		if err := s.takeStock(ctx, exec, drink.ID, req.Quantity); err != nil {
			return err
		}
		return recordStockMovement(ctx, exec, s.movementRepo, drink.ID, &staff.ID, models.MovementTypeSale, -req.Quantity, "retail sale")
	})
	if err != nil {
		return nil, storageError(err, "selling drink")
	}

	zerolog.Ctx(ctx).Info().Int64("sale_id", sale.ID).
		Msgf("new sale recorded for %d bottles of %s", req.Quantity, drinkName)
	return sale, nil
}

// OpenBottle moves one sealed bottle into the open bottles, full of shots.
func (s *salesService) OpenBottle(ctx context.Context, actor Actor, drinkID int64) (*models.OpenBottle, error) {
	var bottle *models.OpenBottle
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		drink, err := s.drinkRepo.GetDrinkForUpdate(ctx, exec, drinkID)
		if err != nil {
			return lookupError(err, "drink does not exist", "locking drink to open bottle")
		}
		if drink.ShotQuantity <= 0 {
			return errNotSoldByTheShot
		}
		if drink.Stock < 1 {
			return errOutOfStock
		}

		staffID, err := actorStaffID(ctx, exec, s.staffRepo, actor)
		if err != nil {
			return err
		}

		if err := s.takeStock(ctx, exec, drink.ID, 1); err != nil {
			return err
		}
		bottle, err = s.bottleRepo.CreateOpenBottle(ctx, exec, &models.OpenBottle{
			DrinkID:        drink.ID,
			ShotsRemaining: drink.ShotQuantity,
			OpenedBy:       staffID,
		})
		if err != nil {
			return storageError(err, "creating open bottle")
		}
		return recordStockMovement(ctx, exec, s.movementRepo, drink.ID, staffID, models.MovementTypeOpenBottle, -1, "bottle opened")
	})
	if err != nil {
		return nil, storageError(err, "opening bottle")
	}

	zerolog.Ctx(ctx).Info().Int64("bottle_id", bottle.ID).Int64("drink_id", drinkID).Msg("a new bottle has been opened")
	return bottle, nil
}

func (s *salesService) ListOpenBottles(ctx context.Context) ([]models.OpenBottleListing, error) {
	bottles, err := s.bottleRepo.ListOpenBottles(ctx, s.tx.Reader())
	if err != nil {
		return nil, storageError(err, "listing open bottles")
	}
	if bottles == nil {
		bottles = []models.OpenBottleListing{}
	}
	return bottles, nil
}

// SellTots sells shots from an open bottle. Only bar staff may sell shots.
// A bottle that runs dry is removed.
func (s *salesService) SellTots(ctx context.Context, actor Actor, bottleID int64, req TotSaleRequest) (*models.TotSale, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var sale *models.TotSale
	var finished bool
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		staff, err := s.staffRepo.GetStaffMemberByUserID(ctx, exec, actor.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNoStaffProfile
			}
			return storageError(err, "loading seller")
		}
		if staff.Department != models.RoleBar {
			return ErrNoStaffProfile
		}

		bottle, err := s.bottleRepo.GetOpenBottleForUpdate(ctx, exec, bottleID)
		if err != nil {
			return lookupError(err, "bottle not found", "locking open bottle")
		}
		if req.ShotQuantity > bottle.ShotsRemaining {
			return errNotEnoughShots
		}

		drink, err := s.drinkRepo.GetDrinkByID(ctx, exec, bottle.DrinkID)
		if err != nil {
			return storageError(err, "loading bottle drink")
		}

		sale, err = s.salesRepo.CreateTotSale(ctx, exec, &models.TotSale{
			OpenBottleID:    bottle.ID,
			DrinkID:         drink.ID,
			ShotQuantity:    req.ShotQuantity,
			Price:           TotPrice(drink.ShotPrice, req.ShotQuantity),
			PaymentMethod:   req.PaymentMethod,
			ReferenceNumber: utils.NullStringFromPtr(req.ReferenceNumber),
			SoldBy:          &staff.ID,
		})
		if err != nil {
			return writeError(err, msgDuplicateReference, "creating tot sale")
		}

		finished, err = s.pourShots(ctx, exec, bottle.ID, req.ShotQuantity)
		return err
	})
	if err != nil {
		return nil, storageError(err, "selling tots")
	}

	logger := zerolog.Ctx(ctx)
	if finished {
		logger.Info().Int64("bottle_id", bottleID).Msg("open bottle is now finished")
	}
	logger.Info().Int64("sale_id", sale.ID).Msgf("%d shots sold", req.ShotQuantity)
	return sale, nil
}

// EditTotSale amends a shot sale. Moving it to another bottle, or changing the
// quantity, first returns the shots to the original bottle (when it still
// exists) and then takes them from the target. The whole edit is rolled back
// when the target cannot cover it.
func (s *salesService) EditTotSale(ctx context.Context, saleID int64, req EditTotSaleRequest) (*models.TotSale, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var sale *models.TotSale
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		sale, err = s.salesRepo.GetTotSaleForUpdate(ctx, exec, saleID)
		if err != nil {
			return lookupError(err, "sale record does not exist", "locking tot sale")
		}

		if req.BottleID != nil || req.ShotQuantity != nil {
			if err := s.moveShots(ctx, exec, sale, req); err != nil {
				return err
			}
		}

		if req.PaymentMethod != nil {
			sale.PaymentMethod = *req.PaymentMethod
		}
		if req.ReferenceNumber != nil {
			sale.ReferenceNumber = utils.NullStringFromPtr(req.ReferenceNumber)
		}

		if err := s.salesRepo.UpdateTotSale(ctx, exec, sale); err != nil {
			return writeError(err, msgDuplicateReference, "updating tot sale")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "editing tot sale")
	}

	zerolog.Ctx(ctx).Info().Int64("sale_id", saleID).Msg("tot sale has been edited")
	return sale, nil
}

// moveShots credits the sale's shots back and debits the new bottle/quantity,
// updating sale in place.
func (s *salesService) moveShots(ctx context.Context, exec repositories.SQLExecutor, sale *models.TotSale, req EditTotSaleRequest) error {
	targetID := sale.OpenBottleID
	if req.BottleID != nil {
		targetID = *req.BottleID
	}
	quantity := sale.ShotQuantity
	if req.ShotQuantity != nil {
		quantity = *req.ShotQuantity
	}

	// Lock every bottle involved in ascending id order.
	ids := []int64{sale.OpenBottleID}
	if targetID != sale.OpenBottleID {
		ids = append(ids, targetID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	bottles := make(map[int64]*models.OpenBottle, len(ids))
	for _, id := range ids {
		bottle, err := s.bottleRepo.GetOpenBottleForUpdate(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return storageError(err, "locking open bottle")
		}
		bottles[id] = bottle
	}

	if original, ok := bottles[sale.OpenBottleID]; ok {
		remaining, err := s.bottleRepo.UpdateShotsRemaining(ctx, exec, original.ID, sale.ShotQuantity)
		if err != nil {
			return storageError(err, "returning shots to original bottle")
		}
		original.ShotsRemaining = remaining
	}

	target, ok := bottles[targetID]
	if !ok {
		return notFoundError("target bottle not found")
	}
	if target.ShotsRemaining < quantity {
		return errNotEnoughShots
	}
	if _, err := s.pourShots(ctx, exec, target.ID, quantity); err != nil {
		return err
	}

	drink, err := s.drinkRepo.GetDrinkByID(ctx, exec, target.DrinkID)
	if err != nil {
		return storageError(err, "loading target bottle drink")
	}

	sale.OpenBottleID = target.ID
	sale.DrinkID = drink.ID
	sale.ShotQuantity = quantity
	sale.Price = TotPrice(drink.ShotPrice, quantity)
	return nil
}

// takeStock removes sealed bottles; the guarded update refuses to go below zero.
func (s *salesService) takeStock(ctx context.Context, exec repositories.SQLExecutor, drinkID int64, quantity int) error {
	if _, err := s.drinkRepo.UpdateStock(ctx, exec, drinkID, -quantity); err != nil {
		if errors.Is(err, repositories.ErrGuardFailed) {
			return errNotEnoughStock
		}
		return storageError(err, "taking stock")
	}
	return nil
}

// pourShots debits a bottle and deletes it once empty. It reports whether the
// bottle was finished.
func (s *salesService) pourShots(ctx context.Context, exec repositories.SQLExecutor, bottleID int64, shots int) (bool, error) {
	remaining, err := s.bottleRepo.UpdateShotsRemaining(ctx, exec, bottleID, -shots)
	if err != nil {
		if errors.Is(err, repositories.ErrGuardFailed) {
			return false, errNotEnoughShots
		}
		return false, storageError(err, "pouring shots")
	}
	if remaining > 0 {
		return false, nil
	}
	if err := s.bottleRepo.DeleteOpenBottle(ctx, exec, bottleID); err != nil {
		return false, storageError(err, "removing finished bottle")
	}
	return true, nil
}
