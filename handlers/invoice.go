package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"hyperinvoice/models"
	"hyperinvoice/services/invoice"
	"hyperinvoice/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func init() {
	// Report bind errors with JSON field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// InvoiceHandler exposes invoice generation and lookup.
type InvoiceHandler struct {
	Service invoice.InvoiceService
}

func NewInvoiceHandler(svc invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: svc}
}

// GenerateInvoiceHandler generates, stores and delivers the invoice of a booking.
func (h *InvoiceHandler) GenerateInvoiceHandler(c *gin.Context) {
	var req models.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Service.GenerateInvoice(c.Request.Context(), *req.BookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	getLogger(c).Info("Invoice generated",
		zap.Int64("bookingId", *req.BookingID),
		zap.String("invoiceNumber", resp.InvoiceNumber))
	c.JSON(http.StatusCreated, resp)
}

// CreateDirectInvoiceHandler generates and records an invoice from the request payload.
func (h *InvoiceHandler) CreateDirectInvoiceHandler(c *gin.Context) {
	var req models.DirectInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Service.GenerateDirect(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	getLogger(c).Info("Direct invoice generated", zap.String("invoiceNumber", resp.InvoiceNumber))
	c.JSON(http.StatusCreated, resp)
}

// GetInvoiceHandler returns a persisted invoice by number.
func (h *InvoiceHandler) GetInvoiceHandler(c *gin.Context) {
	record, err := h.Service.GetInvoice(c.Request.Context(), c.Param("invoiceNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func respondServiceError(c *gin.Context, err error) {
	var ierr *invoice.Error
	if !errors.As(err, &ierr) {
		getLogger(c).Error("Unclassified invoice error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	switch ierr.Kind {
	case invoice.KindValidationFailure:
		if ierr.Field != "" {
			utils.JSONValidationError(c, map[string]string{ierr.Field: ierr.Message})
			return
		}
		utils.JSONError(c, http.StatusBadRequest, ierr.Error())
	case invoice.KindNotFound:
		utils.JSONError(c, http.StatusNotFound, ierr.Error())
	default:
		fields := []zap.Field{
			zap.String("kind", string(ierr.Kind)),
			zap.String("step", string(ierr.Step)),
			zap.Error(err),
		}
		if ierr.DocumentURL != "" {
			fields = append(fields, zap.String("documentUrl", ierr.DocumentURL))
		}
		getLogger(c).Error("Invoice generation failed", fields...)
		utils.JSONError(c, http.StatusInternalServerError, ierr.Error())
	}
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fieldErrors[fieldPath(fe)] = fieldMessage(fe)
		}
		utils.JSONValidationError(c, fieldErrors)
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "Malformed JSON request: "+err.Error())
}

// fieldPath drops the root struct name, e.g. "lineItems[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a well-formed email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
