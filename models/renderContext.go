package models

import "github.com/shopspring/decimal"

// LineItem is a single row on the rendered invoice.
type LineItem struct {
	Description   string
	UnitOfMeasure string
	Quantity      int
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
}

// Amount returns quantity * unit price less discount.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Sub(li.Discount)
}

// RenderContext is everything the invoice template can reference.
// It is built once per request and must not be modified afterwards.
type RenderContext struct {
	// Invoice meta
	InvoiceNumber    string
	InvoiceDate      string
	BookingID        *int64
	BookingReference string
	DocumentType     string

	// Customer
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	// Issuer / venue
	IssuerName  string
	VenueName   string
	ServiceName string

	// Slot
	StartTime     string
	EndTime       string
	BookingStatus string
	Currency      string

	// Financials
	SlotSubtotal        *decimal.Decimal
	PlatformFee         *decimal.Decimal
	PlatformFeePercent  *decimal.Decimal
	OnlineAmount        *decimal.Decimal
	VenueAmount         *decimal.Decimal
	Amount              decimal.Decimal
	Discount            decimal.Decimal
	NetAssessable       decimal.Decimal
	GSTRate             decimal.Decimal
	GSTAmount           decimal.Decimal
	InvoiceTotal        decimal.Decimal
	InvoiceTotalInWords string

	LineItems []LineItem
}

// GeneratedDocument is a rendered PDF held in memory.
type GeneratedDocument struct {
	Bytes []byte
}

func (d *GeneratedDocument) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Bytes)
}
