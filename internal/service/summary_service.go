package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"safariplanner/internal/cache"
	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/report"
	"safariplanner/internal/repository"
)

const summaryCacheTTL = 60 * time.Second

// TripSummary is the aggregated dashboard view of one trip.
type TripSummary struct {
	TripID         uuid.UUID                                        `json:"trip_id"`
	TripName       string                                           `json:"trip_name"`
	Progress       int                                              `json:"progress"`
	AttendeeCount  int                                              `json:"attendee_count"`
	ExpenseCount   int                                              `json:"expense_count"`
	ScheduleCount  int                                              `json:"schedule_count"`
	TotalSpent     decimal.Decimal                                  `json:"total_spent"`
	AverageExpense decimal.Decimal                                  `json:"average_expense"`
	LargestExpense decimal.Decimal                                  `json:"largest_expense"`
	ByCategory     map[model.ExpenseCategory]report.CategoryFigures `json:"by_category"`
	UpcomingCount  int                                              `json:"upcoming_count"`
	NextUpcoming   *model.ScheduleItem                              `json:"next_upcoming,omitempty"`
	GeneratedAt    time.Time                                        `json:"generated_at"`
}

// SummaryService produces trip summaries.
type SummaryService interface {
	Summary(ctx context.Context, userID, tripID uuid.UUID) (*TripSummary, error)
}

type summaryService struct {
	tripRepo repository.TripRepository
	loader   *TripDataLoader
	cache    *cache.Client
	now      func() time.Time
}

// NewSummaryService creates a new summary service.
func NewSummaryService(tripRepo repository.TripRepository, loader *TripDataLoader, cache *cache.Client) SummaryService {
	return &summaryService{tripRepo: tripRepo, loader: loader, cache: cache, now: time.Now}
}

// Summary aggregates a trip's collections into its dashboard figures. The
// result is cached briefly; mutations drop the cache entry through the
// loader's invalidation.
func (s *summaryService) Summary(ctx context.Context, userID, tripID uuid.UUID) (*TripSummary, error) {
	trip, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	cacheKey := summaryCacheKey(tripID)
	var cached TripSummary
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	snapshot, err := s.loader.Load(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load trip data: %w", err)
	}

	now := s.now()
	summary := &TripSummary{
		TripID:         trip.ID,
		TripName:       trip.Name,
		Progress:       report.Progress(snapshot.Attendees, snapshot.Expenses, snapshot.Schedule),
		AttendeeCount:  len(snapshot.Attendees),
		ExpenseCount:   len(snapshot.Expenses),
		ScheduleCount:  len(snapshot.Schedule),
		TotalSpent:     report.GrandTotal(snapshot.Expenses),
		AverageExpense: report.Average(snapshot.Expenses),
		LargestExpense: report.MaxExpense(snapshot.Expenses),
		ByCategory:     report.CategoryBreakdown(snapshot.Expenses),
		UpcomingCount:  report.UpcomingCount(snapshot.Schedule, now),
		NextUpcoming:   report.NextUpcoming(snapshot.Schedule, now),
		GeneratedAt:    now,
	}

	s.cache.SetJSON(ctx, cacheKey, summary, summaryCacheTTL)
	return summary, nil
}
