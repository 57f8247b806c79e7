package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hyperinvoice/models"

	"github.com/shopspring/decimal"
)

const directItemDescription = "Invoice amount"

// GenerateDirect renders, uploads and records an invoice from a caller
// supplied payload. There is no booking lookup and no notification. Caller
// cancellation is ignored once started, as in GenerateInvoice.
func (s *DefaultInvoiceService) GenerateDirect(ctx context.Context, req models.DirectInvoiceRequest) (*models.InvoiceResponse, error) {
	ctx = context.WithoutCancel(ctx)

	if s.Repo == nil {
		return nil, errPersistenceDisabled
	}

	err := s.track(ctx, StepValidate, func() error {
		return validateDirect(req)
	})
	if err != nil {
		return nil, err
	}

	invoiceNumber := s.nextNumber(ctx)
	rc := s.directRenderContext(req, invoiceNumber)

	documentURL, err := s.renderAndUpload(ctx, rc)
	if err != nil {
		return nil, err
	}

	record, err := s.persist(ctx, rc, documentURL)
	if err != nil {
		return nil, err
	}

	resp := &models.InvoiceResponse{
		InvoiceNumber: invoiceNumber,
		DocumentURL:   documentURL,
		Message:       storedMessage,
	}
	fillFromRecord(resp, record)
	return resp, nil
}

func validateDirect(req models.DirectInvoiceRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return validationError("customerName", "Customer name is required")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return validationError("customerEmail", "Customer email is required")
	}
	if req.Amount == nil || !req.Amount.IsPositive() {
		return validationError("amount", "Amount must be greater than zero")
	}
	if _, err := time.Parse(time.DateOnly, req.InvoiceDate); err != nil {
		return validationError("invoiceDate", "Invoice date must be in YYYY-MM-DD format")
	}
	for i, item := range req.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			return validationError(fmt.Sprintf("lineItems[%d].description", i), "Line item description is required")
		}
		if item.Quantity <= 0 {
			return validationError(fmt.Sprintf("lineItems[%d].quantity", i), "Quantity must be greater than zero")
		}
		if item.UnitPrice == nil || !item.UnitPrice.IsPositive() {
			return validationError(fmt.Sprintf("lineItems[%d].unitPrice", i), "Unit price must be greater than zero")
		}
	}
	return nil
}

func (s *DefaultInvoiceService) directRenderContext(req models.DirectInvoiceRequest, invoiceNumber string) *models.RenderContext {
	amount := *req.Amount

	items := make([]models.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		items = append(items, models.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   *item.UnitPrice,
			Discount:    decimal.Zero,
		})
	}
	if len(items) == 0 {
		items = append(items, models.LineItem{
			Description: directItemDescription,
			Quantity:    1,
			UnitPrice:   amount,
			Discount:    decimal.Zero,
		})
	}

	var bookingID *int64
	if req.BookingID != nil {
		id := *req.BookingID
		bookingID = &id
	}

	rc := &models.RenderContext{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		BookingID:     bookingID,
		DocumentType:  DocumentTypeInvoice,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		IssuerName:    s.issuerName(),
		Currency:      DefaultCurrency,
		LineItems:     items,
	}
	applyTax(rc, amount)
	return rc
}
