package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingRecord mirrors the booking service's GET /services/booking/{id} payload.
// Unknown fields are ignored by the decoder. AmountBreakdown and User may be
// null on the wire; the invoice pipeline rejects such records.
type BookingRecord struct {
	ID            int64            `json:"id"`
	Reference     string           `json:"reference"`
	ServiceID     int64            `json:"serviceId"`
	ServiceName   string           `json:"serviceName"`
	ResourceID    int64            `json:"resourceId"`
	ResourceName  string           `json:"resourceName"`
	StartTime     string           `json:"startTime"`
	EndTime       string           `json:"endTime"`
	BookingDate   string           `json:"bookingDate,omitempty"` // YYYY-MM-DD
	CreatedAt     *time.Time       `json:"createdAt,omitempty"`
	BookingType   string           `json:"bookingType,omitempty"`
	Message       string           `json:"message,omitempty"`
	ChildBookings []string         `json:"childBookings,omitempty"`
	Status        string           `json:"status"`
	Amount        *AmountBreakdown `json:"amountBreakdown"`
	User          *CustomerInfo    `json:"user"`
}

// AmountBreakdown carries the booking's pricing split.
type AmountBreakdown struct {
	SlotSubtotal                 *decimal.Decimal `json:"slotSubtotal"`
	PlatformFeePercent           *decimal.Decimal `json:"platformFeePercent"`
	PlatformFee                  *decimal.Decimal `json:"platformFee"`
	TotalAmount                  *decimal.Decimal `json:"totalAmount"`
	OnlinePaymentPercent         *decimal.Decimal `json:"onlinePaymentPercent"`
	OnlineAmount                 *decimal.Decimal `json:"onlineAmount"`
	VenueAmount                  *decimal.Decimal `json:"venueAmount"`
	VenueAmountCollected         *bool            `json:"venueAmountCollected"`
	VenuePaymentCollectionMethod string           `json:"venuePaymentCollectionMethod,omitempty"`
	Currency                     string           `json:"currency,omitempty"`
}

// CustomerInfo is the booking's customer.
type CustomerInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// InvoiceReceipt is the body delivered to the booking service once the document is stored.
type InvoiceReceipt struct {
	BookingID  int64  `json:"bookingId"`
	InvoiceURL string `json:"invoiceURL"`
}
