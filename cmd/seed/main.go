package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"safariplanner/internal/cache"
	"safariplanner/internal/config"
	"safariplanner/internal/db"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
	"safariplanner/internal/service"
)

const (
	demoEmail    = "demo@safariplanner.local"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

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

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	tripRepo := repository.NewTripRepository(gormDB)
	attendeeRepo := repository.NewAttendeeRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	scheduleRepo := repository.NewScheduleRepository(gormDB)

	// Demo user
	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = &model.User{
			Name:         "Demo User",
			Email:        demoEmail,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		log.Printf("Created demo user %s", demoEmail)
	} else if err != nil {
		log.Fatalf("find demo user: %v", err)
	} else {
		log.Printf("Demo user %s already exists, skipping", demoEmail)
	}

	trips, err := tripRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("list trips: %v", err)
	}
	if len(trips) > 0 {
		log.Println("Demo trip already seeded, nothing to do")
		return
	}

	trip := &model.Trip{UserID: user.ID, Name: "Masai Mara 2026"}
	if err := tripRepo.Create(ctx, trip); err != nil {
		log.Fatalf("create trip: %v", err)
	}

	attendees := []*model.Attendee{
		{TripID: trip.ID, UserID: user.ID, Name: "Alice", Email: "alice@example.com", Phone: "+254700000001"},
		{TripID: trip.ID, UserID: user.ID, Name: "Bob", Email: "bob@example.com"},
		{TripID: trip.ID, UserID: user.ID, Name: "Carol"},
	}
	for _, a := range attendees {
		if err := attendeeRepo.Create(ctx, a); err != nil {
			log.Fatalf("create attendee %s: %v", a.Name, err)
		}
	}

	// One single-payer expense and one split three ways
	lodge := &model.Expense{
		TripID:      trip.ID,
		UserID:      user.ID,
		Category:    model.CategoryAccommodation,
		Amount:      decimal.RequireFromString("540.00"),
		Description: "Lodge deposit",
		PaidBy:      "Alice",
	}
	if err := expenseRepo.CreateWithPayers(ctx, lodge); err != nil {
		log.Fatalf("create expense: %v", err)
	}

	fuel := &model.Expense{
		TripID:      trip.ID,
		UserID:      user.ID,
		Category:    model.CategoryTransport,
		Amount:      decimal.RequireFromString("100.00"),
		Description: "Fuel for the drive down",
		PaidBy:      model.PaidByMultiple,
		Payers: []model.ExpensePayer{
			{AttendeeID: &attendees[0].ID, PayerName: "Alice", Amount: decimal.RequireFromString("33.33")},
			{AttendeeID: &attendees[1].ID, PayerName: "Bob", Amount: decimal.RequireFromString("33.33")},
			{AttendeeID: &attendees[2].ID, PayerName: "Carol", Amount: decimal.RequireFromString("33.34")},
		},
	}
	if err := expenseRepo.CreateWithPayers(ctx, fuel); err != nil {
		log.Fatalf("create expense: %v", err)
	}

	schedule := []*model.ScheduleItem{
		{TripID: trip.ID, UserID: user.ID, Title: "Arrival and check-in", Date: "2026-07-10", Time: "14:00", Pictures: model.PictureList{}},
		{TripID: trip.ID, UserID: user.ID, Title: "Morning game drive", Date: "2026-07-11", Time: "06:00", Description: "Meet at the lodge gate", Pictures: model.PictureList{}},
		{TripID: trip.ID, UserID: user.ID, Title: "Sundowner at the river", Date: "2026-07-11", Pictures: model.PictureList{}},
	}
	for _, item := range schedule {
		if err := scheduleRepo.Create(ctx, item); err != nil {
			log.Fatalf("create schedule item %s: %v", item.Title, err)
		}
	}

	// Warm the trip cache so the first dashboard hit is served from Redis
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	loader := service.NewTripDataLoader(attendeeRepo, expenseRepo, scheduleRepo, cacheClient)
	summaryService := service.NewSummaryService(tripRepo, loader, cacheClient)
	if _, err := summaryService.Summary(ctx, user.ID, trip.ID); err != nil {
		log.Printf("Warning: warm summary cache: %v", err)
	}

	log.Printf("Seeded trip %q with %d attendees, 2 expenses and %d schedule items", trip.Name, len(attendees), len(schedule))
	log.Printf("Login with %s / %s", demoEmail, demoPassword)
}
