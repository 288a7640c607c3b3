package services

import (
	"context"
	"testing"
	"time"

	"hospitality_backend/internal/models"
	"hospitality_backend/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	utils.PasswordHashCost = bcrypt.MinCost
}

// testLocation is the carwash zone for tests, east of UTC so zone mix-ups show.
var testLocation = time.FixedZone("EAT", 3*60*60)

type testEnv struct {
	store   *memStore
	tokens  *utils.JWTManager
	auth    AuthService
	staff   StaffService
	drinks  DrinkService
	sales   SalesService
	carwash CarwashService
}

func newTestEnv(t *testing.T, carwashServices ...string) *testEnv {
	t.Helper()
	store := newMemStore()
	tokens := utils.NewJWTManager("test-secret", utils.AccessTokenTTL)
	return &testEnv{
		store:   store,
		tokens:  tokens,
		auth:    NewAuthService(store, store, store, tokens),
		staff:   NewStaffService(store, store, store),
		drinks:  NewDrinkService(store, store, store, store, store),
		sales:   NewSalesService(store, store, store, store, store, store),
		carwash: NewCarwashService(store, store, store, carwashServices, testLocation),
	}
}

// registerStaff creates a staff member and returns it with the matching actor.
func (e *testEnv) registerStaff(t *testing.T, name, phone, idNumber, department string) (Actor, *models.StaffMember) {
	t.Helper()
	staff, err := e.staff.RegisterStaff(context.Background(), RegisterStaffRequest{
		Name: name, PhoneNumber: phone, IDNumber: idNumber, Department: department,
	})
	require.NoError(t, err)
	return Actor{UserID: staff.UserID, Username: phone, Role: department}, staff
}

func (e *testEnv) manager(t *testing.T) Actor {
	t.Helper()
	actor, _ := e.registerStaff(t, "Grace Manager", "0700000001", "10000001", models.RoleManager)
	return actor
}

func (e *testEnv) bartender(t *testing.T) Actor {
	t.Helper()
	actor, _ := e.registerStaff(t, "Brian Bar", "0700000002", "10000002", models.RoleBar)
	return actor
}

func (e *testEnv) addDrink(t *testing.T, actor Actor, stock int, purchasePrice, markup string, shotPrice string, shots int) *models.Drink {
	t.Helper()
	drink, err := e.drinks.AddDrink(context.Background(), actor, AddDrinkRequest{
		Name:          "Jameson",
		Category:      "whisky",
		Stock:         stock,
		PurchasePrice: decimal.RequireFromString(purchasePrice),
		Volume:        "750ml",
		Markup:        decimal.RequireFromString(markup),
		ShotPrice:     decimal.RequireFromString(shotPrice),
		ShotQuantity:  shots,
	})
	require.NoError(t, err)
	return drink
}

func (e *testEnv) drink(t *testing.T, id int64) models.Drink {
	t.Helper()
	d, ok := e.store.drinks[id]
	require.True(t, ok, "drink %d missing", id)
	return d
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func assertKind(t *testing.T, kind error, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind, "got %v", err)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
