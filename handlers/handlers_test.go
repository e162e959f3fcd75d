package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"careerprep/middleware"
	"careerprep/models"
	"careerprep/services"
	"careerprep/store"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory Store for handler tests. The mutex mirrors
// the serialization the real store gets from its advisory lock, so
// concurrency tests against the quota path mean something.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	questions map[int]models.Question
	usage     []models.PlanUsage
	checks    []models.ResumeCheck
	payments  map[string]models.Payment // keyed by external order id
	seq       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]models.User{},
		questions: map[int]models.Question{},
		payments:  map[string]models.Payment{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) addUser(email, name string, isAdmin bool) models.User {
	user := models.User{
		ID:        f.nextID("user"),
		Email:     email,
		Name:      name,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now(),
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) addQuestion(q models.Question) models.Question {
	f.questions[q.ID] = q
	return q
}

func (f *fakeStore) CreateUser(email, passwordHash, name string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return models.User{}, store.ErrDuplicateEmail
		}
	}
	user := f.addUser(email, name, false)
	user.PasswordHash = passwordHash
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) UserByEmail(email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeStore) UserByID(id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) countUsageLocked(userID, usageType string, since time.Time) int {
	count := 0
	for _, u := range f.usage {
		if u.UserID == userID && u.Type == usageType && !u.UsedAt.Before(since) {
			count++
		}
	}
	return count
}

func (f *fakeStore) recordUsageLocked(userID, usageType string) {
	f.usage = append(f.usage, models.PlanUsage{
		ID:     f.nextID("usage"),
		UserID: userID,
		Type:   usageType,
		UsedAt: time.Now(),
	})
}

func (f *fakeStore) CountUsageSince(userID, usageType string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countUsageLocked(userID, usageType, since), nil
}

func (f *fakeStore) RecordUsage(userID, usageType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordUsageLocked(userID, usageType)
	return nil
}

func (f *fakeStore) ConsumeUsage(userID, usageType string, since time.Time, limit int) (bool, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	used := f.countUsageLocked(userID, usageType, since)
	if used >= limit {
		return false, used, nil
	}
	f.recordUsageLocked(userID, usageType)
	return true, used + 1, nil
}

func (f *fakeStore) RandomQuestion() (models.Question, error) {
	for _, q := range f.questions {
		return q, nil
	}
	return models.Question{}, store.ErrNotFound
}

func (f *fakeStore) QuestionByID(id int) (models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return models.Question{}, store.ErrNotFound
	}
	return q, nil
}

func (f *fakeStore) CreateResumeCheck(userID, resumeText, analysis string) (models.ResumeCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	check := models.ResumeCheck{
		ID:         f.nextID("check"),
		UserID:     userID,
		ResumeText: resumeText,
		Analysis:   analysis,
		CreatedAt:  time.Now(),
	}
	f.checks = append(f.checks, check)
	return check, nil
}

func (f *fakeStore) CreatePayment(userID, orderID string, amount float64, currency string) (models.Payment, error) {
	payment := models.Payment{
		ID:              f.nextID("pay"),
		UserID:          userID,
		RazorpayOrderID: orderID,
		Amount:          amount,
		Currency:        currency,
		Status:          models.PaymentPending,
		CreatedAt:       time.Now(),
	}
	f.payments[orderID] = payment
	return payment, nil
}

func (f *fakeStore) SettlePayment(orderID, status string) (models.Payment, error) {
	payment, ok := f.payments[orderID]
	if !ok {
		return models.Payment{}, store.ErrNotFound
	}
	payment.Status = status
	f.payments[orderID] = payment
	return payment, nil
}

func (f *fakeStore) ListUsers() ([]models.AdminUser, error) {
	users := []models.AdminUser{}
	for _, u := range f.users {
		entry := models.AdminUser{
			ID: u.ID, Email: u.Email, Name: u.Name,
			IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt,
		}
		for _, usage := range f.usage {
			if usage.UserID == u.ID {
				entry.PlanUsageCount++
			}
		}
		for _, p := range f.payments {
			if p.UserID == u.ID {
				entry.PaymentCount++
			}
		}
		for _, c := range f.checks {
			if c.UserID == u.ID {
				entry.ResumeCheckCount++
			}
		}
		users = append(users, entry)
	}
	return users, nil
}

func (f *fakeStore) ListPayments() ([]models.AdminPayment, error) {
	payments := []models.AdminPayment{}
	for _, p := range f.payments {
		entry := models.AdminPayment{Payment: p}
		if owner, ok := f.users[p.UserID]; ok {
			entry.UserEmail = owner.Email
			entry.UserName = owner.Name
		}
		payments = append(payments, entry)
	}
	return payments, nil
}

func (f *fakeStore) GrantAdmin(userID string) (models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	user.IsAdmin = true
	f.users[userID] = user
	return user, nil
}

// fakeGateway stubs the Razorpay collaborator.
type fakeGateway struct {
	enabled bool
	orders  int
	err     error
}

func (g *fakeGateway) Enabled() bool { return g.enabled }

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func (g *fakeGateway) CreateOrder(amount float64, currency, receipt string) (services.GatewayOrder, error) {
	if g.err != nil {
		return services.GatewayOrder{}, g.err
	}
	g.orders++
	return services.GatewayOrder{
		ID:       fmt.Sprintf("order_%d", g.orders),
		Amount:   int64(amount * 100),
		Currency: currency,
	}, nil
}

// newTestServer wires the full route table the way main does, against
// fakes.
func newTestServer(fs *fakeStore, gateway services.Gateway) (*gin.Engine, *Handler) {
	if gateway == nil {
		gateway = &fakeGateway{enabled: true}
	}
	h := New(fs, gateway, nil, testSecret)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", middleware.AuthRequired(fs, testSecret), h.Me)

	authed := api.Group("", middleware.AuthRequired(fs, testSecret))
	authed.GET("/aptitude/question", h.GetQuestion)
	authed.POST("/aptitude/answer", h.SubmitAnswer)
	authed.POST("/resume/analyze", h.AnalyzeResume)
	authed.POST("/payments/create-order", h.CreateOrder)

	api.POST("/payments/webhook", h.Webhook)

	admin := api.Group("/admin", middleware.AuthRequired(fs, testSecret), middleware.AdminRequired())
	admin.GET("/users", h.ListUsers)
	admin.GET("/payments", h.ListPayments)
	admin.POST("/make-admin", h.MakeAdmin)

	return r, h
}

func tokenFor(t *testing.T, h *Handler, user models.User) string {
	t.Helper()
	token, err := h.generateToken(user)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRaw(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(newFakeStore(), nil)

	w := doJSON(r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["ok"] != true {
		t.Errorf("ok = %v, want true", body["ok"])
	}
	if body["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}
