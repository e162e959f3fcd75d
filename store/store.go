package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/lib/pq"

	"careerprep/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store wraps the SQL database with typed queries. All access to the
// schema goes through here; handlers never see *sql.DB.
type Store struct {
	db *sql.DB
}

func New(conn *sql.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) CreateUser(email, passwordHash, name string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`INSERT INTO users (email, password_hash, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, is_admin, created_at`,
		email, passwordHash, name,
	).Scan(&user.ID, &user.Email, &user.Name, &user.IsAdmin, &user.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = passwordHash
	return user, nil
}

func (s *Store) UserByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`SELECT id, email, password_hash, name, is_admin, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.IsAdmin, &user.CreatedAt)
	return user, mapNotFound(err)
}

func (s *Store) UserByID(id string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`SELECT id, email, password_hash, name, is_admin, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.IsAdmin, &user.CreatedAt)
	return user, mapNotFound(err)
}

// UpsertAdmin creates the bootstrap admin account, or promotes it if the
// email already exists. Used only at startup.
func (s *Store) UpsertAdmin(email, passwordHash, name string) error {
	_, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, name, is_admin)
		 VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (email) DO UPDATE SET is_admin = TRUE`,
		email, passwordHash, name,
	)
	return err
}

// CountUsageSince returns how many usage-log rows a user has for one
// feature type with used_at at or after the given boundary.
func (s *Store) CountUsageSince(userID, usageType string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM plan_usage
		 WHERE user_id = $1 AND type = $2 AND used_at >= $3`,
		userID, usageType, since,
	).Scan(&count)
	return count, err
}

// RecordUsage appends one usage-log row unconditionally.
func (s *Store) RecordUsage(userID, usageType string) error {
	_, err := s.db.Exec(
		`INSERT INTO plan_usage (user_id, type) VALUES ($1, $2)`,
		userID, usageType,
	)
	return err
}

// ConsumeUsage appends a usage-log row only while the user is under the
// daily limit. The count and the insert run inside one transaction
// holding an advisory lock on (user, feature), so concurrent requests
// for the same user queue up instead of racing the count past the
// limit. Returns whether a row was written and the count afterwards.
func (s *Store) ConsumeUsage(userID, usageType string, since time.Time, limit int) (bool, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	// Released automatically at commit or rollback.
	if _, err := tx.Exec(
		`SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2))`,
		userID, usageType,
	); err != nil {
		return false, 0, err
	}

	var used int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM plan_usage
		 WHERE user_id = $1 AND type = $2 AND used_at >= $3`,
		userID, usageType, since,
	).Scan(&used); err != nil {
		return false, 0, err
	}

	if used >= limit {
		return false, used, tx.Commit()
	}

	if _, err := tx.Exec(
		`INSERT INTO plan_usage (user_id, type) VALUES ($1, $2)`,
		userID, usageType,
	); err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return true, used + 1, nil
}

// RandomQuestion picks uniformly among all stored questions using a
// count-then-offset scheme. Returns ErrNotFound when none exist.
func (s *Store) RandomQuestion() (models.Question, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return models.Question{}, err
	}
	if count == 0 {
		return models.Question{}, ErrNotFound
	}

	offset := rand.Intn(count)
	return s.scanQuestion(s.db.QueryRow(
		`SELECT id, question, options, correct_answer, explanation, category, difficulty
		 FROM questions ORDER BY id OFFSET $1 LIMIT 1`,
		offset,
	))
}

func (s *Store) QuestionByID(id int) (models.Question, error) {
	return s.scanQuestion(s.db.QueryRow(
		`SELECT id, question, options, correct_answer, explanation, category, difficulty
		 FROM questions WHERE id = $1`,
		id,
	))
}

func (s *Store) scanQuestion(row *sql.Row) (models.Question, error) {
	var q models.Question
	var rawOptions string
	err := row.Scan(&q.ID, &q.Question, &rawOptions, &q.CorrectAnswer, &q.Explanation, &q.Category, &q.Difficulty)
	if err != nil {
		return models.Question{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(rawOptions), &q.Options); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// SeedQuestion is the shape used by startup seeding.
type SeedQuestion struct {
	Question      string
	Options       []string
	CorrectAnswer int
	Explanation   string
	Category      string
	Difficulty    string
}

// SeedQuestions inserts sample questions, skipping any whose text is
// already present.
func (s *Store) SeedQuestions(questions []SeedQuestion) (int, error) {
	seeded := 0
	for _, q := range questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return seeded, err
		}
		res, err := s.db.Exec(
			`INSERT INTO questions (question, options, correct_answer, explanation, category, difficulty)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (question) DO NOTHING`,
			q.Question, string(optionsJSON), q.CorrectAnswer, q.Explanation, q.Category, q.Difficulty,
		)
		if err != nil {
			return seeded, err
		}
		if rows, err := res.RowsAffected(); err == nil && rows == 1 {
			seeded++
		}
	}
	return seeded, nil
}

func (s *Store) CreateResumeCheck(userID, resumeText, analysis string) (models.ResumeCheck, error) {
	check := models.ResumeCheck{
		UserID:     userID,
		ResumeText: resumeText,
		Analysis:   analysis,
	}
	err := s.db.QueryRow(
		`INSERT INTO resume_checks (user_id, resume_text, analysis)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, resumeText, analysis,
	).Scan(&check.ID, &check.CreatedAt)
	return check, err
}

func (s *Store) CreatePayment(userID, orderID string, amount float64, currency string) (models.Payment, error) {
	payment := models.Payment{
		UserID:          userID,
		RazorpayOrderID: orderID,
		Amount:          amount,
		Currency:        currency,
		Status:          models.PaymentPending,
	}
	err := s.db.QueryRow(
		`INSERT INTO payments (user_id, razorpay_order_id, amount, currency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		userID, orderID, amount, currency,
	).Scan(&payment.ID, &payment.CreatedAt)
	return payment, err
}

// SettlePayment overwrites the status of the payment with the given
// external order id. Re-delivering the same terminal event is a no-op
// rewrite. Returns ErrNotFound when no such order exists locally.
func (s *Store) SettlePayment(orderID, status string) (models.Payment, error) {
	var payment models.Payment
	err := s.db.QueryRow(
		`UPDATE payments SET status = $1
		 WHERE razorpay_order_id = $2
		 RETURNING id, user_id, razorpay_order_id, amount, currency, status, created_at`,
		status, orderID,
	).Scan(&payment.ID, &payment.UserID, &payment.RazorpayOrderID,
		&payment.Amount, &payment.Currency, &payment.Status, &payment.CreatedAt)
	return payment, mapNotFound(err)
}

func (s *Store) ListUsers() ([]models.AdminUser, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.email, u.name, u.is_admin, u.created_at,
		        (SELECT COUNT(*) FROM plan_usage p WHERE p.user_id = u.id),
		        (SELECT COUNT(*) FROM payments p WHERE p.user_id = u.id),
		        (SELECT COUNT(*) FROM resume_checks r WHERE r.user_id = u.id)
		 FROM users u
		 ORDER BY u.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.IsAdmin, &u.CreatedAt,
			&u.PlanUsageCount, &u.PaymentCount, &u.ResumeCheckCount); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) ListPayments() ([]models.AdminPayment, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.user_id, p.razorpay_order_id, p.amount, p.currency, p.status, p.created_at,
		        u.email, u.name
		 FROM payments p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.AdminPayment{}
	for rows.Next() {
		var p models.AdminPayment
		if err := rows.Scan(&p.ID, &p.UserID, &p.RazorpayOrderID, &p.Amount,
			&p.Currency, &p.Status, &p.CreatedAt, &p.UserEmail, &p.UserName); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GrantAdmin flips is_admin for the given user.
func (s *Store) GrantAdmin(userID string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`UPDATE users SET is_admin = TRUE
		 WHERE id = $1
		 RETURNING id, email, name, is_admin, created_at`,
		userID,
	).Scan(&user.ID, &user.Email, &user.Name, &user.IsAdmin, &user.CreatedAt)
	return user, mapNotFound(err)
}

// mapNotFound converts both "no rows" and a malformed UUID literal into
// ErrNotFound: a syntactically bad id cannot reference anything.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
		return ErrNotFound
	}
	return err
}
