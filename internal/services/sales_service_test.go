package services

import (
	"context"
	"testing"

	"hospitality_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellRetailReducesStockAndPricesWithVAT(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 10, "100", "0.5", "20", 10)

	sale, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{
		Quantity: 2, PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, 8, env.drink(t, drink.ID).Stock)
	assertDecimal(t, "348", sale.Amount)
	assert.Equal(t, models.SaleTypeRetail, sale.SaleType)
	require.NotNil(t, sale.SoldBy)
	assert.Len(t, env.store.drinkSales, 1)

	movements := env.store.movementsFor(drink.ID)
	last := movements[len(movements)-1]
	assert.Equal(t, models.MovementTypeSale, last.MovementType)
	assert.Equal(t, -2, last.QuantityChanged)
}

func TestSellRetailRoundsToOneDecimal(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 5, "1234", "0.35", "0", 0)

	sale, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{Quantity: 3, PaymentMethod: "card"})
	require.NoError(t, err)
	assertDecimal(t, "5797.3", sale.Amount)
}

func TestSellRetailMoreThanStockIsRejected(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 3, "100", "0.5", "0", 0)

	_, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{Quantity: 4, PaymentMethod: "cash"})
	assertKind(t, ErrDomain, err)
	assert.Equal(t, "not enough bottles in stock", err.Error())
	assert.Equal(t, 3, env.drink(t, drink.ID).Stock)
	assert.Empty(t, env.store.drinkSales)
}

func TestSellRetailOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 0, "100", "0.5", "0", 0)

	_, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{Quantity: 1, PaymentMethod: "cash"})
	assertKind(t, ErrDomain, err)
	assert.Equal(t, "drink is currently not in stock", err.Error())
}

func TestSellRetailRequiresStaffProfile(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 3, "100", "0.5", "0", 0)

	superuser, err := env.auth.CreateSuperuser(context.Background(), "admin", "s3cret!")
	require.NoError(t, err)

	_, err = env.sales.SellRetail(context.Background(), Actor{UserID: superuser.ID, Role: models.RoleManager}, drink.ID,
		RetailSaleRequest{Quantity: 1, PaymentMethod: "cash"})
	assertKind(t, ErrAuthorization, err)
	assert.Equal(t, 3, env.drink(t, drink.ID).Stock)
}

func TestSellRetailValidation(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 3, "100", "0.5", "0", 0)

	_, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{Quantity: 0, PaymentMethod: "cash"})
	assertKind(t, ErrValidation, err)

	_, err = env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{Quantity: 1, PaymentMethod: "bitcoin"})
	assertKind(t, ErrValidation, err)

	_, err = env.sales.SellRetail(context.Background(), bar, 999, RetailSaleRequest{Quantity: 1, PaymentMethod: "cash"})
	assertKind(t, ErrNotFound, err)
}

func TestDuplicateReferenceNumberKeepsFirstSale(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 10, "100", "0.5", "0", 0)

	first, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{
		Quantity: 1, PaymentMethod: "mpesa", ReferenceNumber: strPtr("QWE123"),
	})
	require.NoError(t, err)

	_, err = env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{
		Quantity: 2, PaymentMethod: "mpesa", ReferenceNumber: strPtr("QWE123"),
	})
	assertKind(t, ErrConflict, err)
	assert.Equal(t, "payment reference number already exists", err.Error())

	require.Len(t, env.store.drinkSales, 1)
	assert.Contains(t, env.store.drinkSales, first.ID)
	assert.Equal(t, 9, env.drink(t, drink.ID).Stock)
}

func TestBlankReferenceNumbersDoNotCollide(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 10, "100", "0.5", "0", 0)

	for i := 0; i < 2; i++ {
		_, err := env.sales.SellRetail(context.Background(), bar, drink.ID, RetailSaleRequest{
			Quantity: 1, PaymentMethod: "cash", ReferenceNumber: strPtr("  "),
		})
		require.NoError(t, err)
	}
	assert.Len(t, env.store.drinkSales, 2)
}

func TestOpenBottle(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	drink := env.addDrink(t, bar, 5, "1500", "0.4", "150", 25)

	bottle, err := env.sales.OpenBottle(context.Background(), bar, drink.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, env.drink(t, drink.ID).Stock)
	require.Contains(t, env.store.bottles, bottle.ID)
	assert.Equal(t, 25, env.store.bottles[bottle.ID].ShotsRemaining)
	require.NotNil(t, bottle.OpenedBy)

	movements := env.store.movementsFor(drink.ID)
	last := movements[len(movements)-1]
	assert.Equal(t, models.MovementTypeOpenBottle, last.MovementType)
	assert.Equal(t, -1, last.QuantityChanged)

	// A second bottle of the same drink may be open at once.
	_, err = env.sales.OpenBottle(context.Background(), bar, drink.ID)
	require.NoError(t, err)
	listing, err := env.sales.ListOpenBottles(context.Background())
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, "Jameson", listing[0].Name)
	assertDecimal(t, "150", listing[0].ShotPrice)
}

func TestOpenBottleRejections(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)

	empty := env.addDrink(t, bar, 0, "1500", "0.4", "150", 25)
	_, err := env.sales.OpenBottle(context.Background(), bar, empty.ID)
	assertKind(t, ErrDomain, err)
	assert.Empty(t, env.store.bottles)

	noShots := env.addDrink(t, bar, 3, "300", "0.4", "0", 0)
	_, err = env.sales.OpenBottle(context.Background(), bar, noShots.ID)
	assertKind(t, ErrDomain, err)
	assert.Equal(t, 3, env.drink(t, noShots.ID).Stock)

	_, err = env.sales.OpenBottle(context.Background(), bar, 999)
	assertKind(t, ErrNotFound, err)
}

func openBottle(t *testing.T, env *testEnv, actor Actor, shots int) *models.OpenBottle {
	t.Helper()
	drink := env.addDrink(t, actor, 5, "1500", "0.4", "150", shots)
	bottle, err := env.sales.OpenBottle(context.Background(), actor, drink.ID)
	require.NoError(t, err)
	return bottle
}

func TestSellTotsLeavesResidual(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	bottle := openBottle(t, env, bar, 10)

	sale, err := env.sales.SellTots(context.Background(), bar, bottle.ID, TotSaleRequest{ShotQuantity: 3, PaymentMethod: "cash"})
	require.NoError(t, err)

	assertDecimal(t, "450", sale.Price)
	assert.Equal(t, bottle.DrinkID, sale.DrinkID)
	assert.Equal(t, 7, env.store.bottles[bottle.ID].ShotsRemaining)
}

func TestSellTotsExhaustingBottleDeletesIt(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	bottle := openBottle(t, env, bar, 4)

	_, err := env.sales.SellTots(context.Background(), bar, bottle.ID, TotSaleRequest{ShotQuantity: 4, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.NotContains(t, env.store.bottles, bottle.ID)
	assert.Len(t, env.store.totSales, 1)
}

func TestSellTotsOverdrawIsRejectedWithoutMutation(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	bottle := openBottle(t, env, bar, 4)

	_, err := env.sales.SellTots(context.Background(), bar, bottle.ID, TotSaleRequest{ShotQuantity: 5, PaymentMethod: "cash"})
	assertKind(t, ErrDomain, err)
	assert.Equal(t, 4, env.store.bottles[bottle.ID].ShotsRemaining)
	assert.Empty(t, env.store.totSales)
}

func TestSellTotsRequiresBarStaff(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	bottle := openBottle(t, env, bar, 10)
	waiter, _ := env.registerStaff(t, "Wanjiru Waiter", "0700000003", "10000003", models.RoleRestaurant)

	_, err := env.sales.SellTots(context.Background(), waiter, bottle.ID, TotSaleRequest{ShotQuantity: 1, PaymentMethod: "cash"})
	assertKind(t, ErrAuthorization, err)
	assert.Equal(t, 10, env.store.bottles[bottle.ID].ShotsRemaining)
}

func TestSellTotsUnknownBottle(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	_, err := env.sales.SellTots(context.Background(), bar, 999, TotSaleRequest{ShotQuantity: 1, PaymentMethod: "cash"})
	assertKind(t, ErrNotFound, err)
}

func TestEditTotSaleMovesShotsBetweenBottles(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	first := openBottle(t, env, bar, 10)
	second := openBottle(t, env, bar, 10)

	sale, err := env.sales.SellTots(context.Background(), bar, first.ID, TotSaleRequest{ShotQuantity: 3, PaymentMethod: "cash"})
	require.NoError(t, err)

	edited, err := env.sales.EditTotSale(context.Background(), sale.ID, EditTotSaleRequest{BottleID: &second.ID})
	require.NoError(t, err)

	assert.Equal(t, 10, env.store.bottles[first.ID].ShotsRemaining)
	assert.Equal(t, 7, env.store.bottles[second.ID].ShotsRemaining)
	assert.Equal(t, second.ID, edited.OpenBottleID)
	assert.Equal(t, second.DrinkID, edited.DrinkID)
	assert.Equal(t, second.ID, env.store.totSales[sale.ID].OpenBottleID)
}

func TestEditTotSaleOverdrawRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	first := openBottle(t, env, bar, 10)
	second := openBottle(t, env, bar, 5)

	sale, err := env.sales.SellTots(context.Background(), bar, first.ID, TotSaleRequest{ShotQuantity: 3, PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = env.sales.EditTotSale(context.Background(), sale.ID, EditTotSaleRequest{
		BottleID: &second.ID, ShotQuantity: intPtr(6), PaymentMethod: strPtr("card"),
	})
	assertKind(t, ErrDomain, err)

	assert.Equal(t, 7, env.store.bottles[first.ID].ShotsRemaining)
	assert.Equal(t, 5, env.store.bottles[second.ID].ShotsRemaining)
	stored := env.store.totSales[sale.ID]
	assert.Equal(t, first.ID, stored.OpenBottleID)
	assert.Equal(t, 3, stored.ShotQuantity)
	assert.Equal(t, "cash", stored.PaymentMethod)
}

func TestEditTotSaleQuantityOnSameBottle(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	bottle := openBottle(t, env, bar, 10)

	sale, err := env.sales.SellTots(context.Background(), bar, bottle.ID, TotSaleRequest{ShotQuantity: 3, PaymentMethod: "cash"})
	require.NoError(t, err)

	// 7 left, 3 credited back: 10 available for the new quantity.
	edited, err := env.sales.EditTotSale(context.Background(), sale.ID, EditTotSaleRequest{ShotQuantity: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, 1, env.store.bottles[bottle.ID].ShotsRemaining)
	assertDecimal(t, "1350", edited.Price)

	_, err = env.sales.EditTotSale(context.Background(), sale.ID, EditTotSaleRequest{ShotQuantity: intPtr(10)})
	require.NoError(t, err)
	assert.NotContains(t, env.store.bottles, bottle.ID, "bottle emptied by the edit is removed")
}

func TestEditTotSaleAfterOriginalBottleFinished(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	first := openBottle(t, env, bar, 4)
	second := openBottle(t, env, bar, 10)

	sale, err := env.sales.SellTots(context.Background(), bar, first.ID, TotSaleRequest{ShotQuantity: 4, PaymentMethod: "cash"})
	require.NoError(t, err)
	require.NotContains(t, env.store.bottles, first.ID)

	_, err = env.sales.EditTotSale(context.Background(), sale.ID, EditTotSaleRequest{BottleID: &second.ID, ShotQuantity: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 8, env.store.bottles[second.ID].ShotsRemaining)
	assert.NotContains(t, env.store.bottles, first.ID)

	// Without a bottle_id the target is the finished bottle itself.
	other, err := env.sales.SellTots(context.Background(), bar, second.ID, TotSaleRequest{ShotQuantity: 8, PaymentMethod: "cash"})
	require.NoError(t, err)
	_, err = env.sales.EditTotSale(context.Background(), other.ID, EditTotSaleRequest{ShotQuantity: intPtr(1)})
	assertKind(t, ErrNotFound, err)
}

func TestEditTotSalePaymentAndReference(t *testing.T) {
	env := newTestEnv(t)
	bar := env.bartender(t)
	bottle := openBottle(t, env, bar, 10)

	first, err := env.sales.SellTots(context.Background(), bar, bottle.ID, TotSaleRequest{ShotQuantity: 1, PaymentMethod: "mpesa", ReferenceNumber: strPtr("REF1")})
	require.NoError(t, err)
	second, err := env.sales.SellTots(context.Background(), bar, bottle.ID, TotSaleRequest{ShotQuantity: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	edited, err := env.sales.EditTotSale(context.Background(), second.ID, EditTotSaleRequest{PaymentMethod: strPtr("card")})
	require.NoError(t, err)
	assert.Equal(t, "card", edited.PaymentMethod)
	assert.Equal(t, 8, env.store.bottles[bottle.ID].ShotsRemaining, "payment edits leave shots alone")

	_, err = env.sales.EditTotSale(context.Background(), second.ID, EditTotSaleRequest{ReferenceNumber: strPtr("REF1")})
	assertKind(t, ErrConflict, err)

	_, err = env.sales.EditTotSale(context.Background(), second.ID, EditTotSaleRequest{PaymentMethod: strPtr("cheque")})
	assertKind(t, ErrValidation, err)

	_, err = env.sales.EditTotSale(context.Background(), 999, EditTotSaleRequest{PaymentMethod: strPtr("cash")})
	assertKind(t, ErrNotFound, err)
	assert.Equal(t, "mpesa", env.store.totSales[first.ID].PaymentMethod)
}
