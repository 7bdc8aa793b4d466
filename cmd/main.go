package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	firebase "firebase.google.com/go"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"google.golang.org/api/option"

	"lakesideBack/internal/config"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	cfg := config.LoadConfig()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Address
	} else {
		port = ":" + port
	}
	if port == "" {
		port = ":3000"
	}

	addr := flag.String("addr", port, "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()

	rdb := openRedis(cfg, infoLog, errorLog)
	if rdb != nil {
		defer rdb.Close()
	}

	app := initializeApp(cfg, db, rdb, errorLog, infoLog)

	app.dispatcher.Start()
	defer app.dispatcher.Stop()

	go app.adminHub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.adminService.EnsureBootstrapAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
		errorLog.Fatalf("Failed to seed admin account: %v", err)
	}

	startPendingReviewReminder(ctx, app.reviewRepo, app.dispatcher, infoLog, errorLog)
	startSessionCleaner(ctx, app.adminRepo, infoLog, errorLog)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", cfg.Site.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Refresh-Token"},
	})

	srv := &http.Server{
		Addr:         *addr,
		ErrorLog:     errorLog,
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("Starting server on %s", *addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}

func openRedis(cfg config.Config, infoLog, errorLog *log.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		errorLog.Printf("Redis unavailable, stats caching disabled: %v", err)
		rdb.Close()
		return nil
	}
	infoLog.Println("Connected to Redis")
	return rdb
}

func openFirebase(cfg config.Config, errorLog *log.Logger) *firebase.App {
	if cfg.Firebase.CredentialsFile == "" {
		return nil
	}
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	if err != nil {
		errorLog.Printf("Firebase unavailable, push notifications disabled: %v", err)
		return nil
	}
	return app
}

func openDB(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = "mysql"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
