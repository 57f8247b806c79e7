package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRecord is a generated invoice as persisted in the invoices collection.
// Records are written once and never updated.
type InvoiceRecord struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	BookingID     *int64          `json:"bookingId,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceDate   string          `json:"invoiceDate"`
	DocumentURL   string          `json:"documentUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// GenerateInvoiceRequest asks for the invoice of an existing booking.
type GenerateInvoiceRequest struct {
	BookingID *int64 `json:"bookingId" binding:"required,gt=0"`
}

// DirectInvoiceRequest carries a full invoice payload without a booking lookup.
type DirectInvoiceRequest struct {
	BookingID     *int64              `json:"bookingId"`
	CustomerName  string              `json:"customerName" binding:"required"`
	CustomerEmail string              `json:"customerEmail" binding:"required,email"`
	Amount        *decimal.Decimal    `json:"amount" binding:"required"`
	InvoiceDate   string              `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
	LineItems     []DirectInvoiceItem `json:"lineItems" binding:"dive"`
}

// DirectInvoiceItem is a caller-supplied invoice line.
type DirectInvoiceItem struct {
	Description string           `json:"description" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unitPrice" binding:"required"`
}

// InvoiceResponse is returned once an invoice has been generated and stored.
type InvoiceResponse struct {
	ID            string           `json:"id,omitempty"`
	InvoiceNumber string           `json:"invoiceNumber"`
	CustomerName  string           `json:"customerName,omitempty"`
	CustomerEmail string           `json:"customerEmail,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DocumentURL   string           `json:"documentUrl"`
	CreatedAt     *time.Time       `json:"createdAt,omitempty"`
	Message       string           `json:"message"`
}
