package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"safariplanner/internal/cache"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
)

// TripSnapshot is one trip's collections loaded together. The three fetches
// run as independent queries, so the snapshot carries no cross-collection
// transactional guarantee.
type TripSnapshot struct {
	Attendees []model.Attendee
	Expenses  []model.Expense
	Schedule  []model.ScheduleItem
}

type loadState int

const (
	stateUnloaded loadState = iota
	stateLoading
	stateLoaded
	stateError
)

type tripEntry struct {
	mu       sync.Mutex
	state    loadState
	snapshot *TripSnapshot
	err      error
	done     chan struct{}
}

// TripDataLoader memoizes per-trip snapshots behind an explicit state machine
// {Unloaded, Loading, Loaded, Error} keyed by trip id. Concurrent loads of a
// Loading trip wait for the in-flight fetch; mutations transition a trip back
// to Unloaded through Invalidate. An Error state is retried on the next Load.
type TripDataLoader struct {
	attendeeRepo repository.AttendeeRepository
	expenseRepo  repository.ExpenseRepository
	scheduleRepo repository.ScheduleRepository
	cache        *cache.Client
	entries      sync.Map // trip id -> *tripEntry
}

// NewTripDataLoader creates a new trip data loader.
func NewTripDataLoader(
	attendeeRepo repository.AttendeeRepository,
	expenseRepo repository.ExpenseRepository,
	scheduleRepo repository.ScheduleRepository,
	cache *cache.Client,
) *TripDataLoader {
	return &TripDataLoader{
		attendeeRepo: attendeeRepo,
		expenseRepo:  expenseRepo,
		scheduleRepo: scheduleRepo,
		cache:        cache,
	}
}

func (l *TripDataLoader) entry(tripID uuid.UUID) *tripEntry {
	value, _ := l.entries.LoadOrStore(tripID.String(), &tripEntry{})
	return value.(*tripEntry)
}

// Load returns the trip's snapshot, fetching it when the trip is Unloaded or
// its previous load failed.
func (l *TripDataLoader) Load(ctx context.Context, tripID uuid.UUID) (*TripSnapshot, error) {
	for {
		entry := l.entry(tripID)
		entry.mu.Lock()

		switch entry.state {
		case stateLoaded:
			snapshot := entry.snapshot
			entry.mu.Unlock()
			return snapshot, nil

		case stateLoading:
			done := entry.done
			entry.mu.Unlock()
			select {
			case <-done:
				// re-read state on the next loop iteration
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		case stateUnloaded, stateError:
			entry.state = stateLoading
			entry.done = make(chan struct{})
			done := entry.done
			entry.mu.Unlock()

			snapshot, err := l.fetch(ctx, tripID)

			entry.mu.Lock()
			if err != nil {
				entry.state = stateError
				entry.err = err
				entry.snapshot = nil
			} else {
				entry.state = stateLoaded
				entry.err = nil
				entry.snapshot = snapshot
			}
			entry.mu.Unlock()
			close(done)

			if err != nil {
				return nil, err
			}
			return snapshot, nil
		}
	}
}

// Invalidate transitions a trip back to Unloaded and drops the cached trip
// summary. Called by every mutating operation on the trip's collections.
func (l *TripDataLoader) Invalidate(ctx context.Context, tripID uuid.UUID) {
	l.entries.Delete(tripID.String())
	_ = l.cache.Delete(ctx, summaryCacheKey(tripID))
}

// fetch loads the three collections concurrently.
func (l *TripDataLoader) fetch(ctx context.Context, tripID uuid.UUID) (*TripSnapshot, error) {
	var (
		wg       sync.WaitGroup
		snapshot TripSnapshot
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot.Attendees, errs[0] = l.attendeeRepo.ListByTrip(ctx, tripID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Expenses, errs[1] = l.expenseRepo.ListByTrip(ctx, tripID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Schedule, errs[2] = l.scheduleRepo.ListByTrip(ctx, tripID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("load trip data: %w", err)
		}
	}
	return &snapshot, nil
}

func summaryCacheKey(tripID uuid.UUID) string {
	return fmt.Sprintf("trip_summary:%s", tripID.String())
}
