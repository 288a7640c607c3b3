package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// AddIncomeRequest DTO
type AddIncomeRequest struct {
	Customer               string          `json:"customer" validate:"required,max=100"`
	StaffID                int64           `json:"staff_id" validate:"gt=0"`
	AmountCharged          decimal.Decimal `json:"amount_charged" validate:"gt=0,money"`
	PaymentMethod          string          `json:"payment_method" validate:"required,paymentmethod"`
	PaymentReferenceNumber *string         `json:"payment_reference_number" validate:"omitnil,max=50"`
	Service                string          `json:"service" validate:"required"`
	Date                   string          `json:"date" validate:"required"`
}

// EditIncomeRequest DTO. Nil fields are left untouched.
type EditIncomeRequest struct {
	Customer               *string          `json:"customer" validate:"omitnil,min=1,max=100"`
	StaffID                *int64           `json:"staff_id" validate:"omitnil,gt=0"`
	AmountCharged          *decimal.Decimal `json:"amount_charged" validate:"omitnil,gt=0,money"`
	PaymentMethod          *string          `json:"payment_method" validate:"omitnil,paymentmethod"`
	PaymentReferenceNumber *string          `json:"payment_reference_number" validate:"omitnil,max=50"`
	Service                *string          `json:"service" validate:"omitnil,min=1"`
	Date                   *string          `json:"date" validate:"omitnil,min=1"`
}

// IncomePage is one page of the carwash ledger.
type IncomePage struct {
	Income []models.CarwashIncomeView `json:"income"`
	Total  int                        `json:"total"`
}

// --- CarwashService Interface ---
type CarwashService interface {
	AddIncome(ctx context.Context, req AddIncomeRequest) (*models.CarwashIncomeView, error)
	EditIncome(ctx context.Context, incomeID int64, req EditIncomeRequest) (*models.CarwashIncomeView, error)
	DeleteIncome(ctx context.Context, incomeID int64) error
	ListIncome(ctx context.Context, page, pageSize int) (*IncomePage, error)
}

// --- carwashService Implementation ---
type carwashService struct {
	carwashRepo  repositories.CarwashRepository
	staffRepo    repositories.StaffRepository
	tx           repositories.Transactor
	serviceTypes []string
	loc          *time.Location
}

// NewCarwashService creates a new instance of CarwashService. serviceTypes is
// the set of billable services; an empty set rejects every entry. Dates
// without an offset are read in loc and every date is displayed in loc.
func NewCarwashService(cr repositories.CarwashRepository, sr repositories.StaffRepository, tx repositories.Transactor, serviceTypes []string, loc *time.Location) CarwashService {
	if loc == nil {
		loc = time.Local
	}
	return &carwashService{
		carwashRepo:  cr,
		staffRepo:    sr,
		tx:           tx,
		serviceTypes: serviceTypes,
		loc:          loc,
	}
}

// Accepted input layouts for income dates, tried in order.
var incomeDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	models.CarwashDateLayout,
}

func parseIncomeDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range incomeDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, validationError("invalid date format")
}

func (s *carwashService) checkService(service string) error {
	if contains(s.serviceTypes, service) {
		return nil
	}
	if len(s.serviceTypes) == 0 {
		return validationError("no carwash services are configured")
	}
	return validationError("carwash service can only be %s", strings.Join(s.serviceTypes, ", "))
}

var errNotCarwashStaff = NewError(ErrValidation, "staff must exist or be part of the carwash staff")

func (s *carwashService) checkCarwashStaff(ctx context.Context, exec repositories.SQLExecutor, staffID int64) error {
	staff, err := s.staffRepo.GetStaffMemberByID(ctx, exec, staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errNotCarwashStaff
		}
		return storageError(err, "loading carwash staff")
	}
	if staff.Department != models.RoleCarwash {
		return errNotCarwashStaff
	}
	return nil
}

func (s *carwashService) AddIncome(ctx context.Context, req AddIncomeRequest) (*models.CarwashIncomeView, error) {
	req.Customer = strings.TrimSpace(req.Customer)
	req.PaymentMethod = strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	req.Service = strings.TrimSpace(req.Service)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.checkService(req.Service); err != nil {
		return nil, err
	}
	date, err := parseIncomeDate(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	income := &models.CarwashIncome{
		Customer:               req.Customer,
		StaffID:                req.StaffID,
		AmountCharged:          req.AmountCharged,
		PaymentMethod:          req.PaymentMethod,
		PaymentReferenceNumber: utils.NullStringFromPtr(req.PaymentReferenceNumber),
		Service:                req.Service,
		Date:                   date,
	}

	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.checkCarwashStaff(ctx, exec, req.StaffID); err != nil {
			return err
		}
		if _, err := s.carwashRepo.CreateIncome(ctx, exec, income); err != nil {
			return writeError(err, msgDuplicateReference, "creating carwash income")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "adding carwash income")
	}

	utils.LogInfo(ctx, "new carwash income recorded", map[string]interface{}{"income_id": income.ID})
	view := income.View(s.loc)
	return &view, nil
}

func (s *carwashService) EditIncome(ctx context.Context, incomeID int64, req EditIncomeRequest) (*models.CarwashIncomeView, error) {
	if req.Customer != nil {
		trimmed := strings.TrimSpace(*req.Customer)
		req.Customer = &trimmed
	}
	if req.PaymentMethod != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.PaymentMethod))
		req.PaymentMethod = &lowered
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Service != nil {
		if err := s.checkService(strings.TrimSpace(*req.Service)); err != nil {
			return nil, err
		}
	}
	var date *time.Time
	if req.Date != nil {
		parsed, err := parseIncomeDate(*req.Date, s.loc)
		if err != nil {
			return nil, err
		}
		date = &parsed
	}

	var income *models.CarwashIncome
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		income, err = s.carwashRepo.GetIncomeByID(ctx, exec, incomeID)
		if err != nil {
			return lookupError(err, "income record not found", "loading carwash income")
		}

		if req.Customer != nil {
			income.Customer = *req.Customer
		}
		if req.StaffID != nil {
			if err := s.checkCarwashStaff(ctx, exec, *req.StaffID); err != nil {
				return err
			}
			income.StaffID = *req.StaffID
		}
		if req.AmountCharged != nil {
			income.AmountCharged = *req.AmountCharged
		}
		if req.PaymentMethod != nil {
			income.PaymentMethod = *req.PaymentMethod
		}
		if req.PaymentReferenceNumber != nil {
			income.PaymentReferenceNumber = utils.NullStringFromPtr(req.PaymentReferenceNumber)
		}
		if req.Service != nil {
			income.Service = strings.TrimSpace(*req.Service)
		}
		if date != nil {
			income.Date = *date
		}

		if err := s.carwashRepo.UpdateIncome(ctx, exec, income); err != nil {
			return writeError(err, msgDuplicateReference, "updating carwash income")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "editing carwash income")
	}

	utils.LogInfo(ctx, "carwash income entry has been updated", map[string]interface{}{"income_id": incomeID})
	view := income.View(s.loc)
	return &view, nil
}

func (s *carwashService) DeleteIncome(ctx context.Context, incomeID int64) error {
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.carwashRepo.DeleteIncome(ctx, exec, incomeID); err != nil {
			return lookupError(err, "income record not found", "deleting carwash income")
		}
		return nil
	})
	if err != nil {
		return storageError(err, "deleting carwash income")
	}

	utils.LogInfo(ctx, "carwash income record deleted", map[string]interface{}{"income_id": incomeID})
	return nil
}

func (s *carwashService) ListIncome(ctx context.Context, page, pageSize int) (*IncomePage, error) {
	income, total, err := s.carwashRepo.ListIncome(ctx, s.tx.Reader(), page, pageSize)
	if err != nil {
		return nil, storageError(err, "listing carwash income")
	}

	views := make([]models.CarwashIncomeView, 0, len(income))
	for _, i := range income {
		views = append(views, i.View(s.loc))
	}
	return &IncomePage{Income: views, Total: total}, nil
}
