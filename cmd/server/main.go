package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "safariplanner/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"safariplanner/internal/auth"
	"safariplanner/internal/cache"
	"safariplanner/internal/config"
	"safariplanner/internal/db"
	"safariplanner/internal/handler"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
	"safariplanner/internal/router"
	"safariplanner/internal/service"
)

// @title Safari Planner API
// @version 1.0
// @description Group trip coordination API with attendees, shared expenses, schedules and read-only share links.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ShareAccessLog{},
			&model.TripShare{},
			&model.ExpensePayer{},
			&model.Expense{},
			&model.ScheduleItem{},
			&model.Attendee{},
			&model.Trip{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Trip{},
		&model.Attendee{},
		&model.Expense{},
		&model.ExpensePayer{},
		&model.ScheduleItem{},
		&model.TripShare{},
		&model.ShareAccessLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tripRepo := repository.NewTripRepository(gormDB)
	attendeeRepo := repository.NewAttendeeRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	scheduleRepo := repository.NewScheduleRepository(gormDB)
	shareRepo := repository.NewShareRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	loader := service.NewTripDataLoader(attendeeRepo, expenseRepo, scheduleRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	tripService := service.NewTripService(tripRepo, loader)
	attendeeService := service.NewAttendeeService(attendeeRepo, tripRepo, loader)
	expenseService := service.NewExpenseService(expenseRepo, tripRepo, loader)
	scheduleService := service.NewScheduleService(scheduleRepo, tripRepo, loader)
	shareService := service.NewShareService(shareRepo, tripRepo, loader, cacheClient)
	summaryService := service.NewSummaryService(tripRepo, loader, cacheClient)
	csvService := service.NewCSVService(tripRepo, loader, attendeeService, expenseService, scheduleService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler(tripService, summaryService)
	attendeeHandler := handler.NewAttendeeHandler(attendeeService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	shareHandler := handler.NewShareHandler(shareService)
	csvHandler := handler.NewCSVHandler(csvService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		tripHandler,
		attendeeHandler,
		expenseHandler,
		scheduleHandler,
		shareHandler,
		csvHandler,
	)

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	// Flush buffered share access logs before exiting
	shareService.Close()
}
