package invoiceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hyperinvoice/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// invoiceDocument is the stored shape; amounts are kept as exact decimal strings.
type invoiceDocument struct {
	ID            string    `bson:"id"`
	InvoiceNumber string    `bson:"invoiceNumber"`
	BookingID     *int64    `bson:"bookingId,omitempty"`
	CustomerName  string    `bson:"customerName"`
	CustomerEmail string    `bson:"customerEmail"`
	Amount        string    `bson:"amount"`
	InvoiceDate   string    `bson:"invoiceDate"`
	DocumentURL   string    `bson:"documentUrl"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func toDocument(r *models.InvoiceRecord) invoiceDocument {
	return invoiceDocument{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		BookingID:     r.BookingID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Amount:        r.Amount.StringFixed(2),
		InvoiceDate:   r.InvoiceDate,
		DocumentURL:   r.DocumentURL,
		CreatedAt:     r.CreatedAt,
	}
}

func (d invoiceDocument) toRecord() (*models.InvoiceRecord, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", d.Amount, err)
	}
	return &models.InvoiceRecord{
		ID:            d.ID,
		InvoiceNumber: d.InvoiceNumber,
		BookingID:     d.BookingID,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Amount:        amount,
		InvoiceDate:   d.InvoiceDate,
		DocumentURL:   d.DocumentURL,
		CreatedAt:     d.CreatedAt,
	}, nil
}

// Create inserts a new invoice record, assigning its ID and creation time.
func (r *mongoInvoiceRepo) Create(ctx context.Context, record *models.InvoiceRecord) error {
	if record == nil {
		return errors.New("invoice record is nil")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		// Mongo stores millisecond precision
		record.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := r.coll.InsertOne(ctx, toDocument(record)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateInvoice
		}
		return fmt.Errorf("failed to insert invoice %s: %w", record.InvoiceNumber, err)
	}
	return nil
}

// GetByNumber returns an invoice by its invoice number, consulting the cache first.
func (r *mongoInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error) {
	if r.cache != nil {
		cached, err := r.cache.get(ctx, invoiceNumber)
		if err != nil {
			r.logger.Warn("invoice cache read failed", zap.String("invoiceNumber", invoiceNumber), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	var doc invoiceDocument
	err := r.coll.FindOne(ctx, bson.M{"invoiceNumber": invoiceNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceNumber, err)
	}

	record, err := doc.toRecord()
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.set(ctx, record); err != nil {
			r.logger.Warn("invoice cache write failed", zap.String("invoiceNumber", invoiceNumber), zap.Error(err))
		}
	}
	return record, nil
}
