package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/acme-invoicing/cache"
	"github.com/yourusername/acme-invoicing/config"
	"github.com/yourusername/acme-invoicing/models"
	"gorm.io/gorm"
)

const invoiceListingPath = "/dashboard/invoices"

type InvoiceHandler struct {
	db           *gorm.DB
	config       *config.Config
	listingCache cache.ListingCacheInterface
}

func NewInvoiceHandler(db *gorm.DB, cfg *config.Config, listingCache cache.ListingCacheInterface) *InvoiceHandler {
	return &InvoiceHandler{
		db:           db,
		config:       cfg,
		listingCache: listingCache,
	}
}

// CreateInvoice handles the create form submission.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	form, fieldErrors := parseInvoiceForm(c)
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Missing fields. Failed to create invoice.",
			"errors":  fieldErrors,
		})
		return
	}

	invoice := models.Invoice{
		CustomerID: form.CustomerID,
		Amount:     form.AmountCents,
		Status:     form.Status,
		Date:       time.Now().Format("2006-01-02"),
	}

	if err := h.db.Create(&invoice).Error; err != nil {
		log.Printf("create invoice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Create Invoice."})
		return
	}

	// Revalidate the listing, then send the client back to it.
	h.invalidateListing(c)
	c.Redirect(http.StatusSeeOther, invoiceListingPath)
}

// UpdateInvoice handles the edit form submission. The id comes from the route,
// never from the form body.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id := c.Param("id")

	form, fieldErrors := parseInvoiceForm(c)
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Missing fields. Failed to update invoice.",
			"errors":  fieldErrors,
		})
		return
	}

	// id and date stay as created; an unknown id updates zero rows, silently.
	err := h.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(map[string]interface{}{
		"customer_id": form.CustomerID,
		"amount":      form.AmountCents,
		"status":      form.Status,
	}).Error
	if err != nil {
		log.Printf("update invoice %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Update Invoice."})
		return
	}

	h.invalidateListing(c)
	c.Redirect(http.StatusSeeOther, invoiceListingPath)
}

// DeleteInvoice hard-deletes the invoice. The caller stays on the listing view,
// so there is no redirect.
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		log.Printf("delete invoice %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Delete Invoice."})
		return
	}

	h.invalidateListing(c)
	c.Status(http.StatusNoContent)
}

type invoiceRow struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
}

// ListInvoices serves the listing view through the cache.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.listingCache.Get(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
		return
	}

	var rows []invoiceRow
	err := h.db.Model(&models.Invoice{}).
		Select("invoices.id, invoices.customer_id, customers.name AS customer_name, customers.email AS customer_email, invoices.amount, invoices.status, invoices.date").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Order("invoices.date DESC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("list invoices: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	payload, err := json.Marshal(gin.H{"invoices": rows})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode invoices"})
		return
	}

	h.listingCache.Set(ctx, string(payload))
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// ListCustomers backs the customer dropdown on the invoice forms.
func (h *InvoiceHandler) ListCustomers(c *gin.Context) {
	var customers []models.Customer

	if err := h.db.Order("name").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *InvoiceHandler) invalidateListing(c *gin.Context) {
	// Invalidation is fire-and-forget; the TTL bounds staleness if it fails.
	if err := h.listingCache.Invalidate(c.Request.Context()); err != nil {
		log.Printf("invalidate invoice listing cache: %v", err)
	}
}
