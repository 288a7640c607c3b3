package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for every repository plus the
// Transactor. A failed unit of work restores the state it started from, and
// the store enforces the same unique and foreign key rules as the schema.
type memStore struct {
	nextID int64

	users      map[int64]models.User
	staff      map[int64]models.StaffMember
	drinks     map[int64]models.Drink
	bottles    map[int64]models.OpenBottle
	drinkSales map[int64]models.DrinkSale
	totSales   map[int64]models.TotSale
	purchases  map[int64]models.DrinkPurchase
	movements  map[int64]models.StockMovement
	income     map[int64]models.CarwashIncome

	// failures injects an error into the named method.
	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]models.User{},
		staff:      map[int64]models.StaffMember{},
		drinks:     map[int64]models.Drink{},
		bottles:    map[int64]models.OpenBottle{},
		drinkSales: map[int64]models.DrinkSale{},
		totSales:   map[int64]models.TotSale{},
		purchases:  map[int64]models.DrinkPurchase{},
		movements:  map[int64]models.StockMovement{},
		income:     map[int64]models.CarwashIncome{},
		failures:   map[string]error{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	return &memStore{
		nextID:     s.nextID,
		users:      cloneMap(s.users),
		staff:      cloneMap(s.staff),
		drinks:     cloneMap(s.drinks),
		bottles:    cloneMap(s.bottles),
		drinkSales: cloneMap(s.drinkSales),
		totSales:   cloneMap(s.totSales),
		purchases:  cloneMap(s.purchases),
		movements:  cloneMap(s.movements),
		income:     cloneMap(s.income),
		failures:   s.failures,
	}
}

func (s *memStore) restore(snap *memStore) {
	*s = *snap
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) fail(method string) error {
	return s.failures[method]
}

// --- Transactor ---

func (s *memStore) WithinTransaction(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	snap := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) Reader() repositories.SQLExecutor { return nil }

func notFound(what string, id interface{}) error {
	return fmt.Errorf("%w: %s %v", repositories.ErrNotFound, what, id)
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: (constraint: %s)", repositories.ErrDuplicateKey, constraint)
}

func sameRef(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// --- AuthRepository ---

func (s *memStore) CreateUser(ctx context.Context, exec repositories.SQLExecutor, user *models.User) (int64, error) {
	if err := s.fail("CreateUser"); err != nil {
		return 0, err
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return 0, duplicate("users_username_key")
		}
	}
	user.ID = s.id()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return user.ID, nil
}

func (s *memStore) FindUserByUsername(ctx context.Context, exec repositories.SQLExecutor, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, notFound("user", username)
}

func (s *memStore) FindUserByID(ctx context.Context, exec repositories.SQLExecutor, userID int64) (*models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, notFound("user", userID)
	}
	return &u, nil
}

func (s *memStore) UpdatePasswordHash(ctx context.Context, exec repositories.SQLExecutor, userID int64, passwordHash string) error {
	u, ok := s.users[userID]
	if !ok {
		return notFound("user", userID)
	}
	u.PasswordHash = passwordHash
	s.users[userID] = u
	return nil
}

func (s *memStore) DeleteUser(ctx context.Context, exec repositories.SQLExecutor, userID int64) error {
	if _, ok := s.users[userID]; !ok {
		return notFound("user", userID)
	}
	delete(s.users, userID)
	for id, st := range s.staff {
		if st.UserID == userID {
			delete(s.staff, id)
		}
	}
	return nil
}

// --- StaffRepository ---

func (s *memStore) CreateStaffMember(ctx context.Context, exec repositories.SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error) {
	if err := s.fail("CreateStaffMember"); err != nil {
		return nil, err
	}
	for _, st := range s.staff {
		switch {
		case st.UserID == staff.UserID:
			return nil, duplicate("staff_members_user_id_key")
		case st.IDNumber == staff.IDNumber:
			return nil, duplicate("staff_members_id_number_key")
		case st.PhoneNumber == staff.PhoneNumber:
			return nil, duplicate("staff_members_phone_number_key")
		}
	}
	staff.ID = s.id()
	staff.CreatedAt = time.Now()
	s.staff[staff.ID] = *staff
	return staff, nil
}

func (s *memStore) GetStaffMemberByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.StaffMember, error) {
	st, ok := s.staff[id]
	if !ok {
		return nil, notFound("staff member", id)
	}
	return &st, nil
}

func (s *memStore) GetStaffMemberByUserID(ctx context.Context, exec repositories.SQLExecutor, userID int64) (*models.StaffMember, error) {
	for _, st := range s.staff {
		if st.UserID == userID {
			return &st, nil
		}
	}
	return nil, notFound("staff member for user", userID)
}

func (s *memStore) GetStaffMembers(ctx context.Context, exec repositories.SQLExecutor, page, pageSize int, searchTerm *string) ([]models.StaffMember, int, error) {
	var all []models.StaffMember
	for _, st := range s.staff {
		if searchTerm != nil && !strings.Contains(strings.ToLower(st.Name), strings.ToLower(*searchTerm)) &&
			!strings.Contains(st.PhoneNumber, *searchTerm) && !strings.Contains(st.IDNumber, *searchTerm) {
			continue
		}
		all = append(all, st)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, page, pageSize), len(all), nil
}

func (s *memStore) DeleteStaffMember(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	if _, ok := s.staff[id]; !ok {
		return notFound("staff member", id)
	}
	for _, inc := range s.income {
		if inc.StaffID == id {
			return fmt.Errorf("%w: carwash_income_staff_id_fkey", repositories.ErrForeignKey)
		}
	}
	delete(s.staff, id)
	return nil
}

// --- DrinkRepository ---

func (s *memStore) CreateDrink(ctx context.Context, exec repositories.SQLExecutor, drink *models.Drink) (*models.Drink, error) {
	if err := s.fail("CreateDrink"); err != nil {
		return nil, err
	}
	drink.ID = s.id()
	drink.CreatedAt = time.Now()
	s.drinks[drink.ID] = *drink
	return drink, nil
}

func (s *memStore) GetDrinkByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Drink, error) {
	d, ok := s.drinks[id]
	if !ok {
		return nil, notFound("drink", id)
	}
	return &d, nil
}

func (s *memStore) GetDrinkForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Drink, error) {
	return s.GetDrinkByID(ctx, exec, id)
}

func (s *memStore) ListDrinks(ctx context.Context, exec repositories.SQLExecutor) ([]models.Drink, error) {
	drinks := []models.Drink{}
	for _, d := range s.drinks {
		drinks = append(drinks, d)
	}
	sort.Slice(drinks, func(i, j int) bool { return drinks[i].ID < drinks[j].ID })
	return drinks, nil
}

func (s *memStore) UpdateDrink(ctx context.Context, exec repositories.SQLExecutor, drink *models.Drink) error {
	if _, ok := s.drinks[drink.ID]; !ok {
		return notFound("drink", drink.ID)
	}
	s.drinks[drink.ID] = *drink
	return nil
}

func (s *memStore) DeleteDrink(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	if _, ok := s.drinks[id]; !ok {
		return notFound("drink", id)
	}
	referenced := false
	for _, v := range s.drinkSales {
		referenced = referenced || v.DrinkID == id
	}
	for _, v := range s.totSales {
		referenced = referenced || v.DrinkID == id
	}
	for _, v := range s.purchases {
		referenced = referenced || v.DrinkID == id
	}
	for _, v := range s.bottles {
		referenced = referenced || v.DrinkID == id
	}
	if referenced {
		return fmt.Errorf("%w: drink %d is referenced", repositories.ErrForeignKey, id)
	}
	delete(s.drinks, id)
	for mid, m := range s.movements {
		if m.DrinkID == id {
			delete(s.movements, mid)
		}
	}
	return nil
}

func (s *memStore) UpdateStock(ctx context.Context, exec repositories.SQLExecutor, id int64, delta int) (int, error) {
	if err := s.fail("UpdateStock"); err != nil {
		return 0, err
	}
	d, ok := s.drinks[id]
	if !ok || d.Stock+delta < 0 {
		return 0, fmt.Errorf("%w: drink %d by %d", repositories.ErrGuardFailed, id, delta)
	}
	d.Stock += delta
	s.drinks[id] = d
	return d.Stock, nil
}

func (s *memStore) UpdatePurchasePrice(ctx context.Context, exec repositories.SQLExecutor, id int64, price decimal.Decimal) error {
	d, ok := s.drinks[id]
	if !ok {
		return notFound("drink", id)
	}
	d.PurchasePrice = price
	s.drinks[id] = d
	return nil
}

// --- OpenBottleRepository ---

func (s *memStore) CreateOpenBottle(ctx context.Context, exec repositories.SQLExecutor, bottle *models.OpenBottle) (*models.OpenBottle, error) {
	bottle.ID = s.id()
	bottle.CreatedAt = time.Now()
	s.bottles[bottle.ID] = *bottle
	return bottle, nil
}

func (s *memStore) GetOpenBottleForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.OpenBottle, error) {
	b, ok := s.bottles[id]
	if !ok {
		return nil, notFound("open bottle", id)
	}
	return &b, nil
}

func (s *memStore) ListOpenBottles(ctx context.Context, exec repositories.SQLExecutor) ([]models.OpenBottleListing, error) {
	listing := []models.OpenBottleListing{}
	for _, b := range s.bottles {
		d := s.drinks[b.DrinkID]
		listing = append(listing, models.OpenBottleListing{
			ID: b.ID, DrinkID: b.DrinkID, Name: d.Name, ShotsRemaining: b.ShotsRemaining, ShotPrice: d.ShotPrice,
		})
	}
	sort.Slice(listing, func(i, j int) bool { return listing[i].ID < listing[j].ID })
	return listing, nil
}

func (s *memStore) UpdateShotsRemaining(ctx context.Context, exec repositories.SQLExecutor, id int64, delta int) (int, error) {
	b, ok := s.bottles[id]
	if !ok || b.ShotsRemaining+delta < 0 {
		return 0, fmt.Errorf("%w: bottle %d by %d", repositories.ErrGuardFailed, id, delta)
	}
	b.ShotsRemaining += delta
	s.bottles[id] = b
	return b.ShotsRemaining, nil
}

func (s *memStore) DeleteOpenBottle(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	if _, ok := s.bottles[id]; !ok {
		return notFound("open bottle", id)
	}
	delete(s.bottles, id)
	return nil
}

// --- SalesRepository ---

func (s *memStore) CreateDrinkSale(ctx context.Context, exec repositories.SQLExecutor, sale *models.DrinkSale) (*models.DrinkSale, error) {
	for _, existing := range s.drinkSales {
		if sameRef(existing.ReferenceNumber, sale.ReferenceNumber) {
			return nil, duplicate("drink_sales_reference_number_key")
		}
	}
	sale.ID = s.id()
	sale.CreatedAt = time.Now()
	s.drinkSales[sale.ID] = *sale
	return sale, nil
}

func (s *memStore) CreateTotSale(ctx context.Context, exec repositories.SQLExecutor, sale *models.TotSale) (*models.TotSale, error) {
	for _, existing := range s.totSales {
		if sameRef(existing.ReferenceNumber, sale.ReferenceNumber) {
			return nil, duplicate("tot_sales_reference_number_key")
		}
	}
	sale.ID = s.id()
	sale.CreatedAt = time.Now()
	s.totSales[sale.ID] = *sale
	return sale, nil
}

func (s *memStore) GetTotSaleForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.TotSale, error) {
	sale, ok := s.totSales[id]
	if !ok {
		return nil, notFound("tot sale", id)
	}
	return &sale, nil
}

func (s *memStore) UpdateTotSale(ctx context.Context, exec repositories.SQLExecutor, sale *models.TotSale) error {
	if _, ok := s.totSales[sale.ID]; !ok {
		return notFound("tot sale", sale.ID)
	}
	for id, existing := range s.totSales {
		if id != sale.ID && sameRef(existing.ReferenceNumber, sale.ReferenceNumber) {
			return duplicate("tot_sales_reference_number_key")
		}
	}
	s.totSales[sale.ID] = *sale
	return nil
}

// --- PurchaseRepository ---

func (s *memStore) CreateDrinkPurchase(ctx context.Context, exec repositories.SQLExecutor, purchase *models.DrinkPurchase) (*models.DrinkPurchase, error) {
	purchase.ID = s.id()
	purchase.CreatedAt = time.Now()
	s.purchases[purchase.ID] = *purchase
	return purchase, nil
}

// --- InventoryMovementRepository ---

func (s *memStore) CreateMovement(ctx context.Context, exec repositories.SQLExecutor, movement *models.StockMovement) (int64, error) {
	movement.ID = s.id()
	if movement.MovementDate.IsZero() {
		movement.MovementDate = time.Now()
	}
	s.movements[movement.ID] = *movement
	return movement.ID, nil
}

func (s *memStore) GetMovements(ctx context.Context, exec repositories.SQLExecutor, filters models.StockMovementFilters) ([]models.StockMovement, int, error) {
	var all []models.StockMovement
	for _, m := range s.movements {
		if filters.DrinkID != nil && m.DrinkID != *filters.DrinkID {
			continue
		}
		if filters.MovementType != nil && *filters.MovementType != "" && m.MovementType != *filters.MovementType {
			continue
		}
		m.DrinkName = s.drinks[m.DrinkID].Name
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, filters.Page, filters.PageSize), len(all), nil
}

// movementsFor returns a drink's movements oldest first.
func (s *memStore) movementsFor(drinkID int64) []models.StockMovement {
	var out []models.StockMovement
	for _, m := range s.movements {
		if m.DrinkID == drinkID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- CarwashRepository ---

func (s *memStore) CreateIncome(ctx context.Context, exec repositories.SQLExecutor, income *models.CarwashIncome) (*models.CarwashIncome, error) {
	for _, existing := range s.income {
		if sameRef(existing.PaymentReferenceNumber, income.PaymentReferenceNumber) {
			return nil, duplicate("carwash_income_payment_reference_number_key")
		}
	}
	income.ID = s.id()
	income.CreatedAt = time.Now()
	s.income[income.ID] = *income
	return income, nil
}

func (s *memStore) GetIncomeByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.CarwashIncome, error) {
	inc, ok := s.income[id]
	if !ok {
		return nil, notFound("carwash income", id)
	}
	return &inc, nil
}

func (s *memStore) UpdateIncome(ctx context.Context, exec repositories.SQLExecutor, income *models.CarwashIncome) error {
	if _, ok := s.income[income.ID]; !ok {
		return notFound("carwash income", income.ID)
	}
	for id, existing := range s.income {
		if id != income.ID && sameRef(existing.PaymentReferenceNumber, income.PaymentReferenceNumber) {
			return duplicate("carwash_income_payment_reference_number_key")
		}
	}
	s.income[income.ID] = *income
	return nil
}

func (s *memStore) DeleteIncome(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	if _, ok := s.income[id]; !ok {
		return notFound("carwash income", id)
	}
	delete(s.income, id)
	return nil
}

func (s *memStore) ListIncome(ctx context.Context, exec repositories.SQLExecutor, page, pageSize int) ([]models.CarwashIncome, int, error) {
	var all []models.CarwashIncome
	for _, inc := range s.income {
		all = append(all, inc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return paginate(all, page, pageSize), len(all), nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
