package usecase

import (
	"fmt"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
)

// LineRequest is a requested order line before pricing.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// PriceLines derives priced order lines from requested items and the catalog
// snapshot. Unit price and display name are taken from the matching catalog
// entry. A line referencing a product absent from the snapshot fails the
// whole computation; it is never priced as zero.
func PriceLines(items []LineRequest, products []model.Product) ([]model.OrderLine, float64, int, error) {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]model.OrderLine, 0, len(items))
	var totalAmount float64
	var totalItems int
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, 0, 0, fmt.Errorf("product %s missing from catalog response: %w", item.ProductID, domainErrors.ErrProductValidation)
		}
		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Name:      product.Name,
		})
		totalAmount += product.Price * float64(item.Quantity)
		totalItems += item.Quantity
	}

	return lines, totalAmount, totalItems, nil
}
