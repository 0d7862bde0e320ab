package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/acme-invoicing/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SeedHandler struct {
	db *gorm.DB
}

func NewSeedHandler(db *gorm.DB) *SeedHandler {
	return &SeedHandler{db: db}
}

// Seed loads demo customers, invoices, and a demo login so a fresh deployment
// has something to show. Admin only.
func (h *SeedHandler) Seed(c *gin.Context) {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash demo password"})
		return
	}

	demoUser := models.User{
		Email:        "demo@acme.test",
		Name:         "Demo User",
		PasswordHash: string(hash),
		Role:         "user",
		IsActive:     true,
	}
	if err := h.db.Where("email = ?", demoUser.Email).FirstOrCreate(&demoUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed demo user"})
		return
	}

	customers := []models.Customer{
		{Name: "Evil Rabbit", Email: "evil@rabbit.dev", ImageURL: "/customers/evil-rabbit.png"},
		{Name: "Delba de Oliveira", Email: "delba@oliveira.dev", ImageURL: "/customers/delba-de-oliveira.png"},
		{Name: "Lee Robinson", Email: "lee@robinson.dev", ImageURL: "/customers/lee-robinson.png"},
	}
	for i := range customers {
		if err := h.db.Where("email = ?", customers[i].Email).FirstOrCreate(&customers[i]).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed customers"})
			return
		}
	}

	today := time.Now().Format("2006-01-02")
	invoices := []models.Invoice{
		{CustomerID: customers[0].ID.String(), Amount: 15795, Status: models.InvoiceStatusPending, Date: today},
		{CustomerID: customers[1].ID.String(), Amount: 20348, Status: models.InvoiceStatusPaid, Date: today},
		{CustomerID: customers[2].ID.String(), Amount: 3040, Status: models.InvoiceStatusPaid, Date: today},
	}
	if err := h.db.Create(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed invoices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": len(customers),
		"invoices":  len(invoices),
		"users":     1,
	})
}
