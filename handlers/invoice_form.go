package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/acme-invoicing/models"
)

// maxAmount keeps the cents encoding representable as int64.
const maxAmount = float64(math.MaxInt64) / 100

// invoiceForm is the validated shape of an invoice mutation payload.
type invoiceForm struct {
	CustomerID  string
	AmountCents int64
	Status      string
}

// parseInvoiceForm validates the untyped form payload. A non-nil error map
// means the request must be rejected before any store access happens.
func parseInvoiceForm(c *gin.Context) (invoiceForm, map[string][]string) {
	fieldErrors := map[string][]string{}

	customerID := c.PostForm("customerId")
	if customerID == "" {
		fieldErrors["customerId"] = append(fieldErrors["customerId"], "Please select a customer")
	}

	// ParseFloat accepts "NaN" and "Inf"; neither is a valid amount, and
	// anything past maxAmount would wrap the cents conversion.
	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount >= maxAmount {
		fieldErrors["amount"] = append(fieldErrors["amount"], "Amount must be greater than 0")
	}

	status := c.PostForm("status")
	if status != models.InvoiceStatusPending && status != models.InvoiceStatusPaid {
		fieldErrors["status"] = append(fieldErrors["status"], "Please select an invoice status")
	}

	if len(fieldErrors) > 0 {
		return invoiceForm{}, fieldErrors
	}

	return invoiceForm{
		CustomerID: customerID,
		// Store amount in cents
		AmountCents: int64(math.Round(amount * 100)),
		Status:      status,
	}, nil
}
