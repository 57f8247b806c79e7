package invoiceRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hyperinvoice/models"

	"github.com/go-redis/redis/v8"
)

const (
	invoiceCachePrefix = "invoice:"
	invoiceCacheTTL    = 10 * time.Minute
)

// invoiceCache is a read-through cache of persisted invoices keyed by invoice number.
// Records are immutable so entries never need invalidation.
type invoiceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newInvoiceCache(client *redis.Client, ttl time.Duration) *invoiceCache {
	return &invoiceCache{client: client, ttl: ttl}
}

func cacheKey(invoiceNumber string) string {
	return invoiceCachePrefix + invoiceNumber
}

// get returns (nil, nil) on a cache miss.
func (c *invoiceCache) get(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error) {
	data, err := c.client.Get(ctx, cacheKey(invoiceNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record models.InvoiceRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *invoiceCache) set(ctx context.Context, record *models.InvoiceRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(record.InvoiceNumber), string(data), c.ttl).Err()
}
