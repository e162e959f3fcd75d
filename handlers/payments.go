package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerprep/middleware"
	"careerprep/models"
	"careerprep/store"
)

type CreateOrderInput struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateOrder registers an order with the payment gateway and then
// persists a pending payment row referencing it. The remote call comes
// first; if the local insert fails afterwards the remote order is
// orphaned at the gateway and never settles here.
func (h *Handler) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid amount is required"})
		return
	}
	if input.Currency == "" {
		input.Currency = "INR"
	}

	if !h.gateway.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Payment gateway not configured",
			"message": "RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set",
		})
		return
	}

	user, _ := middleware.CurrentUser(c)
	receipt := fmt.Sprintf("user_%s_%d", user.ID, h.now().UnixMilli())

	order, err := h.gateway.CreateOrder(input.Amount, input.Currency, receipt)
	if err != nil {
		log.Printf("Error creating gateway order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	payment, err := h.store.CreatePayment(user.ID, order.ID, input.Amount, input.Currency)
	if err != nil {
		log.Printf("Error saving payment for order %s: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":   order.ID,
		"amount":    float64(order.Amount) / 100, // paise -> rupees
		"currency":  order.Currency,
		"key":       h.gateway.KeyID(),
		"paymentId": payment.ID,
	})
}

// webhookEvent is the slice of the Razorpay event envelope we care
// about.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook settles pending payments from gateway notifications. Once the
// body parses, the response is always 200 {received:true}: unknown
// orders, foreign event types and even database errors are logged and
// acknowledged so the gateway does not retry forever.
func (h *Handler) Webhook(c *gin.Context) {
	var event webhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	var status string
	switch event.Event {
	case "payment.captured":
		status = models.PaymentCompleted
	case "payment.failed":
		status = models.PaymentFailed
	default:
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	payment, err := h.store.SettlePayment(event.Payload.Payment.Entity.OrderID, status)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("Webhook for unknown order %q ignored", event.Payload.Payment.Entity.OrderID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if err != nil {
		log.Printf("Webhook error updating order %q: %v", event.Payload.Payment.Entity.OrderID, err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	log.Printf("Payment %s updated to status: %s", payment.ID, payment.Status)

	if payment.Status == models.PaymentCompleted && h.mailer != nil {
		// Best effort; the payment row is already the source of truth.
		go func() {
			owner, err := h.store.UserByID(payment.UserID)
			if err != nil {
				log.Printf("Receipt skipped, owner lookup failed: %v", err)
				return
			}
			h.mailer.SendPaymentReceipt(owner, payment)
		}()
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
