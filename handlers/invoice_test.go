package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hyperinvoice/models"
	"hyperinvoice/services/invoice"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvoiceService struct {
	mock.Mock
}

func (m *mockInvoiceService) GenerateInvoice(ctx context.Context, bookingID int64) (*models.InvoiceResponse, error) {
	args := m.Called(ctx, bookingID)
	resp, _ := args.Get(0).(*models.InvoiceResponse)
	return resp, args.Error(1)
}

func (m *mockInvoiceService) GenerateDirect(ctx context.Context, req models.DirectInvoiceRequest) (*models.InvoiceResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.InvoiceResponse)
	return resp, args.Error(1)
}

func (m *mockInvoiceService) GetInvoice(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error) {
	args := m.Called(ctx, invoiceNumber)
	record, _ := args.Get(0).(*models.InvoiceRecord)
	return record, args.Error(1)
}

type errorBody struct {
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

func newRouter(svc invoice.InvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewInvoiceHandler(svc)
	r := gin.New()
	r.POST("/api/invoices/generate", h.GenerateInvoiceHandler)
	r.POST("/api/invoices", h.CreateDirectInvoiceHandler)
	r.GET("/api/invoices/:invoiceNumber", h.GetInvoiceHandler)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGenerateInvoiceHandler_Created(t *testing.T) {
	svc := &mockInvoiceService{}
	svc.On("GenerateInvoice", mock.Anything, int64(42)).Return(&models.InvoiceResponse{
		InvoiceNumber: "INV-20260221-A1B2C3D4",
		DocumentURL:   "https://res.cloudinary.com/demo/image/upload/fl_attachment/invoices/INV-20260221-A1B2C3D4.pdf",
		Message:       "Invoice generated and delivered successfully!",
	}, nil)

	w := do(newRouter(svc), http.MethodPost, "/api/invoices/generate", `{"bookingId":42}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INV-20260221-A1B2C3D4", body["invoiceNumber"])
	assert.Contains(t, body["documentUrl"], "fl_attachment")
	assert.Equal(t, "Invoice generated and delivered successfully!", body["message"])
	assert.NotContains(t, body, "id")
	svc.AssertExpectations(t)
}

func TestGenerateInvoiceHandler_BindErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing booking id", `{}`, "bookingId"},
		{"non positive booking id", `{"bookingId":0}`, "bookingId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInvoiceService{}
			w := do(newRouter(svc), http.MethodPost, "/api/invoices/generate", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, "Validation Failed", body.Error)
			assert.Contains(t, body.FieldErrors, tt.field)
			svc.AssertNotCalled(t, "GenerateInvoice", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateInvoiceHandler_MalformedJSON(t *testing.T) {
	svc := &mockInvoiceService{}
	w := do(newRouter(svc), http.MethodPost, "/api/invoices/generate", `{"bookingId":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Bad Request", body.Error)
	assert.Contains(t, body.Message, "Malformed JSON request")
}

func TestGenerateInvoiceHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errText string
		check   func(t *testing.T, body errorBody)
	}{
		{
			name:    "not found",
			err:     &invoice.Error{Kind: invoice.KindNotFound, Message: "Booking not found with id : '99'"},
			status:  http.StatusNotFound,
			errText: "Not Found",
			check: func(t *testing.T, body errorBody) {
				assert.Equal(t, "Booking not found with id : '99'", body.Message)
			},
		},
		{
			name:    "validation with field",
			err:     &invoice.Error{Kind: invoice.KindValidationFailure, Field: "user", Message: "Booking has no customer details"},
			status:  http.StatusBadRequest,
			errText: "Validation Failed",
			check: func(t *testing.T, body errorBody) {
				assert.Equal(t, map[string]string{"user": "Booking has no customer details"}, body.FieldErrors)
			},
		},
		{
			name:    "upstream",
			err:     &invoice.Error{Kind: invoice.KindUpstreamFailure, Message: "Failed to fetch booking details: 502"},
			status:  http.StatusInternalServerError,
			errText: "Internal Server Error",
			check: func(t *testing.T, body errorBody) {
				assert.Equal(t, "Failed to fetch booking details: 502", body.Message)
			},
		},
		{
			name:    "storage",
			err:     &invoice.Error{Kind: invoice.KindStorageFailure, Message: "Failed to upload PDF to Cloudinary: quota"},
			status:  http.StatusInternalServerError,
			errText: "Internal Server Error",
		},
		{
			name:    "unclassified",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			errText: "Internal Server Error",
			check: func(t *testing.T, body errorBody) {
				assert.Equal(t, "boom", body.Message)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInvoiceService{}
			svc.On("GenerateInvoice", mock.Anything, int64(99)).Return(nil, tt.err)

			w := do(newRouter(svc), http.MethodPost, "/api/invoices/generate", `{"bookingId":99}`)
			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.errText, body.Error)
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestCreateDirectInvoiceHandler(t *testing.T) {
	svc := &mockInvoiceService{}
	amount := decimal.RequireFromString("1180")
	svc.On("GenerateDirect", mock.Anything, mock.MatchedBy(func(req models.DirectInvoiceRequest) bool {
		return req.CustomerName == "Asha Rao" &&
			req.Amount != nil && req.Amount.Equal(decimal.NewFromInt(1000)) &&
			len(req.LineItems) == 1 && req.LineItems[0].Quantity == 2
	})).Return(&models.InvoiceResponse{
		ID:            "rec-1",
		InvoiceNumber: "INV-20260221-A1B2C3D4",
		Amount:        &amount,
		DocumentURL:   "https://example.test/doc.pdf",
		Message:       "Invoice generated and stored successfully!",
	}, nil)

	body := `{"customerName":"Asha Rao","customerEmail":"asha@example.com","amount":1000,
		"invoiceDate":"2026-02-21","lineItems":[{"description":"Court hire","quantity":2,"unitPrice":500}]}`
	w := do(newRouter(svc), http.MethodPost, "/api/invoices", body)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rec-1", resp["id"])
	assert.Equal(t, "1180", resp["amount"])
	svc.AssertExpectations(t)
}

func TestCreateDirectInvoiceHandler_BindErrors(t *testing.T) {
	svc := &mockInvoiceService{}
	body := `{"customerName":"","customerEmail":"not-an-email","amount":10,"invoiceDate":"21-02-2026",
		"lineItems":[{"description":"x","quantity":0,"unitPrice":5}]}`
	w := do(newRouter(svc), http.MethodPost, "/api/invoices", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Validation Failed", resp.Error)
	assert.Equal(t, "must not be null", resp.FieldErrors["customerName"])
	assert.Equal(t, "must be a well-formed email address", resp.FieldErrors["customerEmail"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", resp.FieldErrors["invoiceDate"])
	assert.Equal(t, "must not be null", resp.FieldErrors["lineItems[0].quantity"])
	svc.AssertNotCalled(t, "GenerateDirect", mock.Anything, mock.Anything)
}

func TestGetInvoiceHandler(t *testing.T) {
	svc := &mockInvoiceService{}
	svc.On("GetInvoice", mock.Anything, "INV-20260221-A1B2C3D4").Return(&models.InvoiceRecord{
		ID:            "rec-1",
		InvoiceNumber: "INV-20260221-A1B2C3D4",
		Amount:        decimal.RequireFromString("590"),
	}, nil)
	svc.On("GetInvoice", mock.Anything, "INV-20260221-ZZZZZZZZ").Return(nil, &invoice.Error{
		Kind:    invoice.KindNotFound,
		Message: "Invoice not found with invoiceNumber : 'INV-20260221-ZZZZZZZZ'",
	})
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/api/invoices/INV-20260221-A1B2C3D4", "")
	require.Equal(t, http.StatusOK, w.Code)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "rec-1", record["id"])
	assert.Equal(t, "590", record["amount"])

	w = do(r, http.MethodGet, "/api/invoices/INV-20260221-ZZZZZZZZ", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invoice not found with invoiceNumber : 'INV-20260221-ZZZZZZZZ'", decodeError(t, w).Message)
}
