package invoice

import (
	"context"
	"time"

	invoiceRepo "hyperinvoice/database/repository/invoice"
	"hyperinvoice/models"
	"hyperinvoice/services/storage"
)

// InvoiceService generates, stores and looks up booking invoices.
type InvoiceService interface {
	GenerateInvoice(ctx context.Context, bookingID int64) (*models.InvoiceResponse, error)
	GenerateDirect(ctx context.Context, req models.DirectInvoiceRequest) (*models.InvoiceResponse, error)
	GetInvoice(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error)
}

// BookingGateway is the booking service as seen by the pipeline.
type BookingGateway interface {
	FetchBooking(ctx context.Context, bookingID int64) (*models.BookingRecord, error)
	NotifyInvoiceReady(ctx context.Context, bookingID int64, documentURL string) error
}

type DocumentRenderer interface {
	Render(ctx context.Context, templateName string, rc *models.RenderContext) (*models.GeneratedDocument, error)
}

type NumberGenerator interface {
	Generate() string
}

type AmountPolicy string

const (
	// AmountPolicyLenient bills a booking without a total as zero.
	AmountPolicyLenient AmountPolicy = "lenient"
	// AmountPolicyStrict rejects a booking without a total.
	AmountPolicyStrict AmountPolicy = "strict"
)

const (
	DefaultTemplateName = "invoice"
	DefaultIssuerName   = "HyperInvoice"
	DefaultCurrency     = "INR"
	DocumentTypeInvoice = "INV"

	successMessage = "Invoice generated and delivered successfully!"
	storedMessage  = "Invoice generated and stored successfully!"
)

// DefaultInvoiceService implements InvoiceService. Repo is optional; when nil
// generated invoices are not recorded and the direct and lookup operations
// are unavailable.
type DefaultInvoiceService struct {
	Gateway      BookingGateway
	Renderer     DocumentRenderer
	Uploader     storage.DocumentUploader
	Numbers      NumberGenerator
	Repo         invoiceRepo.InvoiceRepository
	Observer     Observer
	TemplateName string
	AmountPolicy AmountPolicy
	IssuerName   string
	Now          func() time.Time
}

func (s *DefaultInvoiceService) observer() Observer {
	if s.Observer == nil {
		return nopObserver{}
	}
	return s.Observer
}

func (s *DefaultInvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultInvoiceService) templateName() string {
	if s.TemplateName == "" {
		return DefaultTemplateName
	}
	return s.TemplateName
}

func (s *DefaultInvoiceService) issuerName() string {
	if s.IssuerName == "" {
		return DefaultIssuerName
	}
	return s.IssuerName
}

// ParseAmountPolicy maps a configured value to a policy, defaulting to lenient.
func ParseAmountPolicy(value string) AmountPolicy {
	if AmountPolicy(value) == AmountPolicyStrict {
		return AmountPolicyStrict
	}
	return AmountPolicyLenient
}
