package invoiceRepo

import (
	"context"
	"errors"

	"hyperinvoice/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collectionName = "invoices"

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrDuplicateInvoice = errors.New("invoice number already exists")
)

// InvoiceRepository persists generated invoices. Records are insert-only.
type InvoiceRepository interface {
	Create(ctx context.Context, record *models.InvoiceRecord) error
	GetByNumber(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoInvoiceRepo struct {
	coll   *mongo.Collection
	cache  *invoiceCache
	logger *zap.Logger
}

// NewMongoInvoiceRepo returns an InvoiceRepository backed by MongoDB.
// cacheClient may be nil, in which case lookups always hit the database.
func NewMongoInvoiceRepo(db *mongo.Database, cacheClient *redis.Client, logger *zap.Logger) InvoiceRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := &mongoInvoiceRepo{
		coll:   db.Collection(collectionName),
		logger: logger,
	}
	if cacheClient != nil {
		repo.cache = newInvoiceCache(cacheClient, invoiceCacheTTL)
	}
	return repo
}
