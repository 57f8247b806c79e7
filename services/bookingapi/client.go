package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hyperinvoice/models"

	"go.uber.org/zap"
)

const (
	bookingPath        = "/services/booking/"
	invoiceReceivePath = "/invoice-receive"

	opFetch  = "Failed to fetch booking details"
	opNotify = "Failed to deliver invoice URL to booking service"

	maxErrorBody = 512
)

// Client talks to the external booking service. It keeps no state besides its
// base address and HTTP client; calls are attempted exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a Client. A zero timeout leaves the HTTP client unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("booking api client initialized", zap.String("baseURL", baseURL))
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchBooking retrieves a booking by id. A null body yields (nil, nil).
func (c *Client) FetchBooking(ctx context.Context, bookingID int64) (*models.BookingRecord, error) {
	url := c.baseURL + bookingPath + strconv.FormatInt(bookingID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &UpstreamError{Op: opFetch, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: opFetch, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{BookingID: bookingID}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: opFetch, StatusCode: resp.StatusCode, Err: errorBody(resp.Body)}
	}

	var booking *models.BookingRecord
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &UpstreamError{Op: opFetch, StatusCode: resp.StatusCode, Err: err}
	}

	if booking == nil {
		c.logger.Warn("booking api returned empty body", zap.Int64("bookingId", bookingID))
	} else {
		c.logger.Debug("booking fetched",
			zap.Int64("bookingId", bookingID),
			zap.String("reference", booking.Reference),
			zap.String("status", booking.Status))
	}
	return booking, nil
}

// NotifyInvoiceReady reports the stored document's URL back to the booking service.
func (c *Client) NotifyInvoiceReady(ctx context.Context, bookingID int64, documentURL string) error {
	body, err := json.Marshal(models.InvoiceReceipt{BookingID: bookingID, InvoiceURL: documentURL})
	if err != nil {
		return &UpstreamError{Op: opNotify, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invoiceReceivePath, bytes.NewReader(body))
	if err != nil {
		return &UpstreamError{Op: opNotify, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: opNotify, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Op: opNotify, StatusCode: resp.StatusCode, Err: errorBody(resp.Body)}
	}
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func errorBody(r io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		msg = "empty response body"
	}
	return errors.New(msg)
}
