package model

// Product is the catalog snapshot entry returned by the product service:
// authoritative name and price for a validated product id.
type Product struct {
	ID    string
	Name  string
	Price float64
}

// PaymentSession is the opaque checkout session handle issued by the
// payment provider.
type PaymentSession struct {
	ID  string
	URL string
}

// PaymentSessionRequest describes a checkout session to open for a
// persisted order. Items carry the display data captured at creation.
type PaymentSessionRequest struct {
	OrderID  string
	Currency string
	Items    []PaymentSessionItem
}

// PaymentSessionItem is a display-ready line summary for the provider.
type PaymentSessionItem struct {
	Name     string
	Price    float64
	Quantity int
}
