package bookingapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingJSON = `{
  "id": 42,
  "reference": "BK-42",
  "serviceId": 3,
  "serviceName": "Badminton",
  "resourceId": 9,
  "resourceName": "Court 2",
  "startTime": "18:00",
  "endTime": "19:00",
  "bookingDate": "2026-02-21",
  "createdAt": "2026-02-20T10:15:00+05:30",
  "amountBreakdown": {
    "slotSubtotal": 450,
    "platformFeePercent": 10,
    "platformFee": 50,
    "totalAmount": 500,
    "onlineAmount": 500,
    "venueAmount": 0,
    "venueAmountCollected": false,
    "currency": "INR",
    "someNewField": "ignored"
  },
  "user": {"id": 7, "name": "Asha Rao", "email": "asha@example.com", "phone": "9999999999"},
  "status": "CONFIRMED",
  "unexpected": {"nested": true}
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, nil)
}

func TestFetchBooking_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/services/booking/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bookingJSON))
	})

	booking, err := client.FetchBooking(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, "BK-42", booking.Reference)
	assert.Equal(t, "Court 2", booking.ResourceName)
	require.NotNil(t, booking.Amount)
	require.NotNil(t, booking.Amount.TotalAmount)
	assert.True(t, booking.Amount.TotalAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, booking.Amount.SlotSubtotal.Equal(decimal.NewFromInt(450)))
	assert.Nil(t, booking.Amount.OnlinePaymentPercent)
	require.NotNil(t, booking.User)
	assert.Equal(t, "asha@example.com", booking.User.Email)
	require.NotNil(t, booking.CreatedAt)
}

func TestFetchBooking_NullSectionsStayNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 5, "user": null, "amountBreakdown": null}`))
	})

	booking, err := client.FetchBooking(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Nil(t, booking.User)
	assert.Nil(t, booking.Amount)
}

func TestFetchBooking_EmptyBody(t *testing.T) {
	for name, body := range map[string]string{"null": "null", "empty": ""} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			booking, err := client.FetchBooking(context.Background(), 1)
			assert.NoError(t, err)
			assert.Nil(t, booking)
		})
	}
}

func TestFetchBooking_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	_, err := client.FetchBooking(context.Background(), 99)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(99), nf.BookingID)
}

func TestFetchBooking_UpstreamFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		_, err := client.FetchBooking(context.Background(), 1)
		var ue *UpstreamError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, http.StatusBadGateway, ue.StatusCode)
		assert.Contains(t, err.Error(), "Failed to fetch booking details")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id": "not-a-number"`))
		})

		_, err := client.FetchBooking(context.Background(), 1)
		var ue *UpstreamError
		require.ErrorAs(t, err, &ue)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, time.Second, nil).FetchBooking(context.Background(), 1)
		var ue *UpstreamError
		require.ErrorAs(t, err, &ue)
		assert.Zero(t, ue.StatusCode)
	})
}

func TestNotifyInvoiceReady(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoice-receive", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.NotifyInvoiceReady(context.Background(), 42, "https://res.cloudinary.com/demo/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, float64(42), got["bookingId"])
	assert.Equal(t, "https://res.cloudinary.com/demo/x.pdf", got["invoiceURL"])
}

func TestNotifyInvoiceReady_Failure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.NotifyInvoiceReady(context.Background(), 42, "https://example.com/x.pdf")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Contains(t, err.Error(), "Failed to deliver invoice URL to booking service")
	assert.Contains(t, err.Error(), "empty response body")
}

func TestNotifyInvoiceReady_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.NotifyInvoiceReady(ctx, 1, "u")
	assert.True(t, errors.Is(err, context.Canceled))
}
