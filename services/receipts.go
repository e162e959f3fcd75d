package services

import (
	"fmt"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"careerprep/models"
)

// Mailer sends best-effort transactional email. The payment record in
// the database is the source of truth; a lost email is never an error
// surfaced to the gateway.
type Mailer struct {
	apiKey string
	from   string
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{apiKey: apiKey, from: from}
}

// SendPaymentReceipt emails the user after a payment is captured.
// Skips silently when SendGrid is not configured.
func (m *Mailer) SendPaymentReceipt(user models.User, payment models.Payment) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Receipt mail panic recovered: %v", r)
		}
	}()

	if m.apiKey == "" || m.from == "" {
		log.Println("Missing SendGrid config, skipping receipt email")
		return
	}

	subject := fmt.Sprintf("Payment received: %.2f %s", payment.Amount, payment.Currency)

	body := fmt.Sprintf(`Hi %s,

We received your payment.

PAYMENT SUMMARY:
Order: %s
Amount: %.2f %s
Status: %s
Time: %s

Thank you!

---
Payment ID: %s`,
		user.Name,
		payment.RazorpayOrderID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.CreatedAt.Format(time.RFC3339),
		payment.ID,
	)

	from := mail.NewEmail("CareerPrep", m.from)
	to := mail.NewEmail(user.Name, user.Email)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending receipt email: %v", err)
	} else {
		log.Printf("Receipt email sent. Status Code: %d", response.StatusCode)
	}
}
