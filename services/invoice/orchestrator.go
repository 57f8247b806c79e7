package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hyperinvoice/models"
	"hyperinvoice/utils"

	"github.com/shopspring/decimal"
)

var gstRate = decimal.RequireFromString("0.18")

// GenerateInvoice runs the full pipeline for an existing booking: fetch,
// validate, number, render, upload, notify and, when a repository is set,
// persist. Any failure aborts the request. Caller cancellation is ignored
// once started so a stored document is always reported back.
func (s *DefaultInvoiceService) GenerateInvoice(ctx context.Context, bookingID int64) (*models.InvoiceResponse, error) {
	ctx = context.WithoutCancel(ctx)

	var booking *models.BookingRecord
	err := s.track(ctx, StepFetch, func() error {
		var err error
		booking, err = s.Gateway.FetchBooking(ctx, bookingID)
		return err
	})
	if err != nil {
		return nil, classify(StepFetch, err)
	}

	var amount decimal.Decimal
	err = s.track(ctx, StepValidate, func() error {
		var err error
		amount, err = s.validateBooking(booking)
		return err
	})
	if err != nil {
		return nil, err
	}

	// the fetched record is authoritative for the id reported back
	if booking.ID != 0 {
		bookingID = booking.ID
	}

	invoiceNumber := s.nextNumber(ctx)
	rc := s.bookingRenderContext(booking, bookingID, invoiceNumber, amount)

	documentURL, err := s.renderAndUpload(ctx, rc)
	if err != nil {
		return nil, err
	}

	err = s.track(ctx, StepNotify, func() error {
		return s.Gateway.NotifyInvoiceReady(ctx, bookingID, documentURL)
	})
	if err != nil {
		s.observer().DocumentOrphaned(ctx, bookingID, invoiceNumber, documentURL, err)
		ierr := classify(StepNotify, err)
		ierr.DocumentURL = documentURL
		return nil, ierr
	}

	resp := &models.InvoiceResponse{
		InvoiceNumber: invoiceNumber,
		DocumentURL:   documentURL,
		Message:       successMessage,
	}
	if s.Repo == nil {
		return resp, nil
	}

	record, err := s.persist(ctx, rc, documentURL)
	if err != nil {
		return nil, err
	}
	fillFromRecord(resp, record)
	return resp, nil
}

// GetInvoice returns a previously persisted invoice.
func (s *DefaultInvoiceService) GetInvoice(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error) {
	if !utils.IsInvoiceNumber(invoiceNumber) {
		return nil, &Error{
			Kind:    KindValidationFailure,
			Field:   "invoiceNumber",
			Message: fmt.Sprintf("Invalid invoice number '%s'", invoiceNumber),
		}
	}
	if s.Repo == nil {
		return nil, errPersistenceDisabled
	}
	record, err := s.Repo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		ierr := classify(StepPersist, err)
		if ierr.Kind == KindNotFound {
			ierr.Message = fmt.Sprintf("Invoice not found with invoiceNumber : '%s'", invoiceNumber)
		}
		return nil, ierr
	}
	return record, nil
}

var errPersistenceDisabled = &Error{
	Kind:    KindPersistenceFailure,
	Step:    StepPersist,
	Message: "invoice persistence is not enabled",
}

// validateBooking applies the validation gate and the amount policy, returning
// the pre-tax amount to bill.
func (s *DefaultInvoiceService) validateBooking(booking *models.BookingRecord) (decimal.Decimal, error) {
	if booking == nil {
		return decimal.Zero, validationError("booking", "Booking details are missing")
	}
	if booking.User == nil {
		return decimal.Zero, validationError("user", "Booking has no customer details")
	}
	if booking.Amount == nil {
		return decimal.Zero, validationError("amountBreakdown", "Booking has no amount breakdown")
	}
	if booking.Amount.TotalAmount == nil {
		if s.AmountPolicy == AmountPolicyStrict {
			return decimal.Zero, validationError("amountBreakdown.totalAmount", "Booking has no total amount")
		}
		return decimal.Zero, nil
	}
	return *booking.Amount.TotalAmount, nil
}

func (s *DefaultInvoiceService) bookingRenderContext(booking *models.BookingRecord, bookingID int64, invoiceNumber string, amount decimal.Decimal) *models.RenderContext {
	breakdown := booking.Amount
	unitPrice := amount
	if breakdown.SlotSubtotal != nil {
		unitPrice = *breakdown.SlotSubtotal
	}

	invoiceDate := booking.BookingDate
	if invoiceDate == "" {
		invoiceDate = s.now().Format(time.DateOnly)
	}
	currency := breakdown.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	rc := &models.RenderContext{
		InvoiceNumber:      invoiceNumber,
		InvoiceDate:        invoiceDate,
		BookingID:          &bookingID,
		BookingReference:   booking.Reference,
		DocumentType:       DocumentTypeInvoice,
		CustomerName:       booking.User.Name,
		CustomerEmail:      booking.User.Email,
		CustomerPhone:      booking.User.Phone,
		IssuerName:         s.issuerName(),
		VenueName:          booking.ResourceName,
		ServiceName:        booking.ServiceName,
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		BookingStatus:      booking.Status,
		Currency:           currency,
		SlotSubtotal:       breakdown.SlotSubtotal,
		PlatformFee:        breakdown.PlatformFee,
		PlatformFeePercent: breakdown.PlatformFeePercent,
		OnlineAmount:       breakdown.OnlineAmount,
		VenueAmount:        breakdown.VenueAmount,
		LineItems: []models.LineItem{{
			Description:   lineDescription(booking),
			UnitOfMeasure: slotWindow(booking),
			Quantity:      1,
			UnitPrice:     unitPrice,
			Discount:      decimal.Zero,
		}},
	}
	applyTax(rc, amount)
	return rc
}

// applyTax fills the amount, GST and total fields. GST is rounded half-up to paise.
func applyTax(rc *models.RenderContext, amount decimal.Decimal) {
	gst := amount.Mul(gstRate).Round(2)
	total := amount.Add(gst)

	rc.Amount = amount
	rc.Discount = decimal.Zero
	rc.NetAssessable = amount
	rc.GSTRate = gstRate
	rc.GSTAmount = gst
	rc.InvoiceTotal = total
	rc.InvoiceTotalInWords = utils.AmountToWords(&total)
}

func lineDescription(booking *models.BookingRecord) string {
	return joinNonEmpty(" - ", booking.ServiceName, booking.ResourceName)
}

func slotWindow(booking *models.BookingRecord) string {
	return joinNonEmpty(" to ", booking.StartTime, booking.EndTime)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func (s *DefaultInvoiceService) nextNumber(ctx context.Context) string {
	var number string
	_ = s.track(ctx, StepNumber, func() error {
		number = s.Numbers.Generate()
		return nil
	})
	return number
}

// renderAndUpload produces the PDF and stores it under the invoice number.
func (s *DefaultInvoiceService) renderAndUpload(ctx context.Context, rc *models.RenderContext) (string, error) {
	var doc *models.GeneratedDocument
	err := s.track(ctx, StepRender, func() error {
		var err error
		doc, err = s.Renderer.Render(ctx, s.templateName(), rc)
		return err
	})
	if err != nil {
		return "", classify(StepRender, err)
	}

	var documentURL string
	err = s.track(ctx, StepUpload, func() error {
		var err error
		documentURL, err = s.Uploader.Upload(ctx, doc.Bytes, rc.InvoiceNumber)
		return err
	})
	if err != nil {
		return "", classify(StepUpload, err)
	}
	return documentURL, nil
}

func (s *DefaultInvoiceService) persist(ctx context.Context, rc *models.RenderContext, documentURL string) (*models.InvoiceRecord, error) {
	record := &models.InvoiceRecord{
		InvoiceNumber: rc.InvoiceNumber,
		BookingID:     rc.BookingID,
		CustomerName:  rc.CustomerName,
		CustomerEmail: rc.CustomerEmail,
		Amount:        rc.InvoiceTotal,
		InvoiceDate:   rc.InvoiceDate,
		DocumentURL:   documentURL,
	}
	err := s.track(ctx, StepPersist, func() error {
		return s.Repo.Create(ctx, record)
	})
	if err != nil {
		ierr := classify(StepPersist, err)
		ierr.Kind = KindPersistenceFailure
		ierr.DocumentURL = documentURL
		return nil, ierr
	}
	return record, nil
}

func fillFromRecord(resp *models.InvoiceResponse, record *models.InvoiceRecord) {
	amount := record.Amount
	createdAt := record.CreatedAt
	resp.ID = record.ID
	resp.CustomerName = record.CustomerName
	resp.CustomerEmail = record.CustomerEmail
	resp.Amount = &amount
	resp.CreatedAt = &createdAt
}

// track reports a step to the observer around fn.
func (s *DefaultInvoiceService) track(ctx context.Context, step Step, fn func() error) error {
	obs := s.observer()
	obs.StepStarted(ctx, step)
	start := time.Now()
	err := fn()
	obs.StepFinished(ctx, step, time.Since(start), err)
	return err
}
