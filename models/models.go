package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"-"`
	Explanation   string   `json:"-"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
}

// Usage types recorded in plan_usage.
const (
	UsageAptitude = "aptitude"
	UsageResume   = "resume"
)

type PlanUsage struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Type   string    `json:"type"`
	UsedAt time.Time `json:"usedAt"`
}

type ResumeCheck struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ResumeText string    `json:"resumeText"`
	Analysis   string    `json:"analysis"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Payment statuses. A payment is created pending and moves exactly once
// to completed or failed when the gateway webhook arrives.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	RazorpayOrderID string    `json:"razorpayOrderId"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AdminUser is the admin listing view of a user, enriched with counts.
type AdminUser struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	IsAdmin          bool      `json:"isAdmin"`
	CreatedAt        time.Time `json:"createdAt"`
	PlanUsageCount   int       `json:"planUsageCount"`
	PaymentCount     int       `json:"paymentCount"`
	ResumeCheckCount int       `json:"resumeCheckCount"`
}

// AdminPayment is the admin listing view of a payment with its owner.
type AdminPayment struct {
	Payment
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}
