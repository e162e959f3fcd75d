package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerprep/store"
)

// ListUsers returns every user with their usage, payment and resume
// check counts, newest first.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.store.ListPayments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

type MakeAdminInput struct {
	UserID string `json:"userId"`
}

func (h *Handler) MakeAdmin(c *gin.Context) {
	var input MakeAdminInput
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	user, err := h.store.GrantAdmin(input.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User promoted to admin", "user": user})
}
