package services

import "github.com/shopspring/decimal"

// VATRate is applied on top of the marked-up price of a retail sale.
var VATRate = decimal.NewFromFloat(0.16)

// CatalogSellingPrice is the list price shown in the drinks catalog. It
// excludes VAT and the purchase price itself.
func CatalogSellingPrice(purchasePrice, markup decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(markup)
}

// RetailUnitPrice is what one sealed bottle costs at the till.
func RetailUnitPrice(purchasePrice, markup decimal.Decimal) decimal.Decimal {
	margin := purchasePrice.Mul(markup)
	net := margin.Add(purchasePrice)
	vat := net.Mul(VATRate)
	return net.Add(vat)
}

// RetailSaleAmount prices quantity bottles, rounded to one decimal place.
func RetailSaleAmount(purchasePrice, markup decimal.Decimal, quantity int) decimal.Decimal {
	return RetailUnitPrice(purchasePrice, markup).Mul(decimal.NewFromInt(int64(quantity))).Round(1)
}

// TotPrice prices shots sold from an open bottle.
func TotPrice(shotPrice decimal.Decimal, shots int) decimal.Decimal {
	return shotPrice.Mul(decimal.NewFromInt(int64(shots)))
}
