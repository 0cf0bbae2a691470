package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sefazor/ourmatches-backend/internal/config"
	"github.com/sefazor/ourmatches-backend/internal/handler"
	"github.com/sefazor/ourmatches-backend/internal/middleware"
	"github.com/sefazor/ourmatches-backend/internal/repository"
	"github.com/sefazor/ourmatches-backend/internal/service"
	"github.com/sefazor/ourmatches-backend/pkg/database"
	"github.com/sefazor/ourmatches-backend/pkg/email"
	"github.com/sefazor/ourmatches-backend/pkg/logger"
	"github.com/sefazor/ourmatches-backend/pkg/payment"
	"github.com/sefazor/ourmatches-backend/pkg/storage"
	"github.com/sefazor/ourmatches-backend/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Config'i yükle
	cfg := config.LoadConfig()

	zapLogger := logger.New()
	defer zapLogger.Sync()

	// Initialize database (ORM route)
	db := database.NewDatabase()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Raw-SQL route uses its own pool against the same database
	pgxPool := database.NewPgxPool(context.Background())
	defer pgxPool.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	memberQueryRepo := repository.NewMemberQueryRepository(pgxPool)
	likesRepo := repository.NewLikesRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	// Storage service
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email service
	emailService := email.NewEmailService()

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	memberService := service.NewMemberService(userRepo, memberQueryRepo)
	likesService := service.NewLikesService(likesRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)
	photoService := service.NewPhotoService(photoRepo, userRepo, r2Storage, cfg.R2.PublicURL)

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.PremiumPriceID)
	paymentService := service.NewPaymentService(stripeService, userRepo)

	// Validator'ı önce tanımla
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	memberHandler := handler.NewMemberHandler(memberService)
	likesHandler := handler.NewLikesHandler(likesService)
	messageHandler := handler.NewMessageHandler(messageService, validator)
	photoHandler := handler.NewPhotoHandler(photoService)
	paymentHandler := handler.NewPaymentHandler(paymentService, zapLogger)

	// Router
	app := fiber.New()

	// Global Middleware'ler önce tanımlanmalı
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://ourmatches.co, https://www.ourmatches.co, http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
		ExposeHeaders:    "Pagination",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Stripe webhook (public)
	api.Post("/payments/webhook", paymentHandler.HandleStripeWebhook)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	api.Use(middleware.ActivityMiddleware(memberService))
	{
		// Member listing: ORM route and raw-SQL route return the same pages
		members := api.Group("/members")
		members.Get("/", memberHandler.GetMembers)
		members.Get("/sql", memberHandler.GetMembersSQL)
		members.Get("/sql/:username", memberHandler.GetMemberSQL)
		members.Get("/:username", memberHandler.GetMember)
		members.Put("/", memberHandler.UpdateProfile)
		members.Put("/sql", memberHandler.UpdateProfileSQL)

		// Photo routes
		photos := api.Group("/photos")
		photos.Post("/", photoHandler.AddPhoto)
		photos.Put("/set-main/:photoId", photoHandler.SetMainPhoto)
		photos.Delete("/:photoId", photoHandler.DeletePhoto)

		// Like routes
		likes := api.Group("/likes")
		likes.Post("/:username", likesHandler.AddLike)
		likes.Get("/", likesHandler.GetLikes)

		// Message routes
		messages := api.Group("/messages")
		messages.Post("/", messageHandler.SendMessage)
		messages.Get("/", messageHandler.GetMessages)
		messages.Get("/thread/:username", messageHandler.GetThread)

		// Premium membership
		payments := api.Group("/payments")
		payments.Post("/premium", paymentHandler.CreatePremiumCheckout)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Fatal(app.Listen(":" + port))
}
