package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const invoiceDateLayout = "20060102"

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{8}-[A-Z0-9]{8}$`)

// InvoiceNumberGenerator produces identifiers of the form INV-YYYYMMDD-XXXXXXXX.
// Uniqueness is probabilistic; nothing checks the result against storage.
type InvoiceNumberGenerator struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewInvoiceNumberGenerator returns a generator using the wall clock.
func NewInvoiceNumberGenerator() *InvoiceNumberGenerator {
	return &InvoiceNumberGenerator{Now: time.Now}
}

// Generate returns a fresh invoice number dated on the generation day.
func (g *InvoiceNumberGenerator) Generate() string {
	now := time.Now
	if g != nil && g.Now != nil {
		now = g.Now
	}
	unique := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "INV-" + now().Format(invoiceDateLayout) + "-" + unique
}

// IsInvoiceNumber reports whether s is a well-formed invoice number.
func IsInvoiceNumber(s string) bool {
	return invoiceNumberPattern.MatchString(s)
}
