package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"lakesideBack/internal/config"
	"lakesideBack/internal/handlers"
	"lakesideBack/internal/notify"
	"lakesideBack/internal/payments"
	"lakesideBack/internal/repositories"
	"lakesideBack/internal/services"
	"lakesideBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	signingKey string
	tokens     *utils.Manager

	reviewRepo  *repositories.ReviewRepository
	bookingRepo *repositories.BookingRepository
	priceRepo   *repositories.PriceRepository
	adminRepo   *repositories.AdminRepository

	reviewService  *services.ReviewService
	bookingService *services.BookingService
	priceService   *services.PriceService
	contactService *services.ContactService
	adminService   *services.AdminService

	reviewHandler  *handlers.ReviewHandler
	bookingHandler *handlers.BookingHandler
	priceHandler   *handlers.PriceHandler
	contactHandler *handlers.ContactHandler
	adminHandler   *handlers.AdminHandler
	photoHandler   *handlers.PhotoHandler
	paymentHandler *handlers.PaymentHandler

	dispatcher *notify.Dispatcher
	adminHub   *AdminHub

	db *sql.DB
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) *application {
	reviewRepo := &repositories.ReviewRepository{DB: db}
	bookingRepo := &repositories.BookingRepository{DB: db}
	priceRepo := &repositories.PriceRepository{DB: db}
	adminRepo := &repositories.AdminRepository{DB: db}

	site := notify.Site{
		Name:       cfg.Site.Name,
		BaseURL:    cfg.Site.BaseURL,
		FromEmail:  cfg.SMTP.From,
		AdminEmail: cfg.SMTP.AdminEmail,
		Signature:  "The " + cfg.Site.Name + " Team",
	}

	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		mailer = &notify.SMTPMailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		}
	} else {
		infoLog.Println("SMTP not configured, email notifications disabled")
	}

	dispatcher := notify.NewDispatcher(mailer, site, infoLog, errorLog)

	adminHub := NewAdminHub(errorLog)
	dispatcher.Hub = adminHub

	if fb := openFirebase(cfg, errorLog); fb != nil {
		msgClient, err := fb.Messaging(context.Background())
		if err != nil {
			errorLog.Printf("Firebase messaging unavailable: %v", err)
		} else {
			dispatcher.Push = &notify.AdminPush{
				Client:   msgClient,
				Tokens:   cfg.Firebase.AdminTokens,
				ErrorLog: errorLog,
			}
		}
	}

	statsCache := &services.StatsCache{RDB: rdb, TTL: 5 * time.Minute, ErrorLog: errorLog}

	tokenManager, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		errorLog.Fatalf("JWT secret missing: %v", err)
	}

	reviewService := &services.ReviewService{Store: reviewRepo, Notifier: dispatcher, Cache: statsCache}
	bookingService := &services.BookingService{Store: bookingRepo}
	priceService := &services.PriceService{Store: priceRepo}
	contactService := &services.ContactService{Sender: dispatcher}
	adminService := &services.AdminService{Store: adminRepo, TokenManager: tokenManager, SigningKey: cfg.JWT.Secret}

	photoStorage := &utils.PhotoStorage{
		AccessKey:     cfg.S3.AccessKey,
		SecretKey:     cfg.S3.SecretKey,
		Bucket:        cfg.S3.Bucket,
		Region:        cfg.S3.Region,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	}

	stripeClient := payments.NewClient(&http.Client{Timeout: 10 * time.Second}, cfg.Stripe.SecretKey)

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		signingKey:     cfg.JWT.Secret,
		tokens:         tokenManager,
		reviewRepo:     reviewRepo,
		bookingRepo:    bookingRepo,
		priceRepo:      priceRepo,
		adminRepo:      adminRepo,
		reviewService:  reviewService,
		bookingService: bookingService,
		priceService:   priceService,
		contactService: contactService,
		adminService:   adminService,
		reviewHandler:  &handlers.ReviewHandler{Service: reviewService},
		bookingHandler: &handlers.BookingHandler{Service: bookingService},
		priceHandler:   &handlers.PriceHandler{Service: priceService},
		contactHandler: &handlers.ContactHandler{Service: contactService},
		adminHandler:   &handlers.AdminHandler{Service: adminService},
		photoHandler:   &handlers.PhotoHandler{Storage: photoStorage},
		paymentHandler: &handlers.PaymentHandler{Client: stripeClient},
		dispatcher:     dispatcher,
		adminHub:       adminHub,
		db:             db,
	}
}
