package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"careerprep/config"
	"careerprep/db"
	"careerprep/handlers"
	"careerprep/middleware"
	"careerprep/services"
	"careerprep/store"
)

func runMigrations(conn *sql.DB) {
	sqlBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Fatal("Failed to read schema.sql:", err)
	}

	if _, err := conn.Exec(string(sqlBytes)); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}
	log.Println("Database schema verified")
}

func seed(st *store.Store, cfg config.Config) {
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash bootstrap admin password:", err)
		}
		if err := st.UpsertAdmin(cfg.AdminEmail, string(hash), "Admin User"); err != nil {
			log.Fatal("Failed to seed admin user:", err)
		}
		log.Println("Bootstrap admin ensured:", cfg.AdminEmail)
	}

	seeded, err := st.SeedQuestions(sampleQuestions)
	if err != nil {
		log.Fatal("Failed to seed questions:", err)
	}
	if seeded > 0 {
		log.Printf("Seeded %d questions", seeded)
	}
}

func corsMiddleware(frontendURL string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(frontendURL, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		// No FRONTEND_URL set: allow everything (local development).
		return cors.Default()
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	return cors.New(corsConfig)
}

func main() {
	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	runMigrations(conn)

	st := store.New(conn)
	seed(st, cfg)

	gateway := services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if !gateway.Enabled() {
		log.Println("Razorpay credentials not set, payment orders disabled")
	}
	mailer := services.NewMailer(cfg.SendgridAPIKey, cfg.ReceiptFrom)

	jwtSecret := []byte(cfg.JWTSecret)
	h := handlers.New(st, gateway, mailer, jwtSecret)

	r := gin.Default()
	r.Use(corsMiddleware(cfg.FrontendURL))

	api := r.Group("/api")

	api.GET("/health", h.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthRequired(st, jwtSecret), h.Me)
	}

	authed := api.Group("", middleware.AuthRequired(st, jwtSecret))
	{
		authed.GET("/aptitude/question", h.GetQuestion)
		authed.POST("/aptitude/answer", h.SubmitAnswer)
		authed.POST("/resume/analyze", h.AnalyzeResume)
		authed.POST("/payments/create-order", h.CreateOrder)
	}

	// The gateway authenticates itself out-of-band; no bearer token here.
	api.POST("/payments/webhook", h.Webhook)

	admin := api.Group("/admin",
		middleware.AuthRequired(st, jwtSecret),
		middleware.AdminRequired())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/payments", h.ListPayments)
		admin.POST("/make-admin", h.MakeAdmin)
	}

	log.Println("Server starting on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
