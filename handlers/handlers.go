package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careerprep/models"
	"careerprep/services"
)

// Store is everything the HTTP layer needs from persistence. The
// concrete implementation is store.Store; tests substitute an
// in-memory fake.
type Store interface {
	CreateUser(email, passwordHash, name string) (models.User, error)
	UserByEmail(email string) (models.User, error)
	UserByID(id string) (models.User, error)

	CountUsageSince(userID, usageType string, since time.Time) (int, error)
	RecordUsage(userID, usageType string) error
	ConsumeUsage(userID, usageType string, since time.Time, limit int) (bool, int, error)

	RandomQuestion() (models.Question, error)
	QuestionByID(id int) (models.Question, error)

	CreateResumeCheck(userID, resumeText, analysis string) (models.ResumeCheck, error)

	CreatePayment(userID, orderID string, amount float64, currency string) (models.Payment, error)
	SettlePayment(orderID, status string) (models.Payment, error)

	ListUsers() ([]models.AdminUser, error)
	ListPayments() ([]models.AdminPayment, error)
	GrantAdmin(userID string) (models.User, error)
}

// Handler holds the route implementations and their collaborators.
type Handler struct {
	store     Store
	gateway   services.Gateway
	mailer    *services.Mailer
	analyzer  services.ResumeAnalyzer
	jwtSecret []byte
	now       func() time.Time
}

func New(s Store, gateway services.Gateway, mailer *services.Mailer, jwtSecret []byte) *Handler {
	return &Handler{
		store:     s,
		gateway:   gateway,
		mailer:    mailer,
		analyzer:  services.PlaceholderAnalysis,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// quotaExceeded maps a quota failure onto the 403 body the original
// API contract promises.
func quotaExceeded(c *gin.Context, err *services.QuotaExceededError) {
	c.JSON(http.StatusForbidden, gin.H{
		"error": "Daily limit reached",
		"limit": err.Limit,
		"used":  err.Used,
	})
}
