package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"careerprep/middleware"
	"careerprep/models"
	"careerprep/services"
	"careerprep/store"
)

type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user, err := h.store.CreateUser(input.Email, string(hash), input.Name)
	if errors.Is(err, store.ErrDuplicateEmail) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's profile plus metered usage:
// today's counts against each limit and the all-time totals.
func (h *Handler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	dayStart := services.DayStart(h.now())

	usage := gin.H{}
	for usageType, limit := range map[string]int{
		models.UsageAptitude: services.AptitudeDailyLimit,
		models.UsageResume:   services.ResumeDailyLimit,
	} {
		used, err := h.store.CountUsageSince(user.ID, usageType, dayStart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		total, err := h.store.CountUsageSince(user.ID, usageType, time.Time{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		usage[usageType] = gin.H{"used": used, "limit": limit, "total": total}
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "usage": usage})
}

func (h *Handler) generateToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     h.now().Add(time.Hour * 24 * 7).Unix(),
	})
	return token.SignedString(h.jwtSecret)
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AuthCookie, token, 3600*24*7, "/", "", false, true)
}
