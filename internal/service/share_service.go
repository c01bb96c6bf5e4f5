package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"safariplanner/internal/cache"
	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/report"
	"safariplanner/internal/repository"
)

const (
	// minTokenLength rejects obviously malformed tokens before the store
	// lookup. Generated tokens are 32 hex characters.
	minTokenLength = 16

	sharePayloadTTL = 30 * time.Second
)

// ShareInput carries the share creation options.
type ShareInput struct {
	Passcode         string
	CanViewAttendees bool
	CanViewExpenses  bool
	CanViewSchedule  bool
	ExpiresAt        *time.Time
}

// SharedTrip is the read-only view a resolved share link exposes. Every
// section key is always present on the wire; withheld sections are empty
// lists and their permission flag is false.
type SharedTrip struct {
	TripID           uuid.UUID                  `json:"trip_id"`
	TripName         string                     `json:"trip_name"`
	CanViewAttendees bool                       `json:"can_view_attendees"`
	CanViewExpenses  bool                       `json:"can_view_expenses"`
	CanViewSchedule  bool                       `json:"can_view_schedule"`
	Attendees        []model.PublicAttendee     `json:"attendees"`
	Expenses         []model.PublicExpense      `json:"expenses"`
	Schedule         []model.PublicScheduleItem `json:"schedule"`
}

// ShareService manages trip share links and their public resolution.
type ShareService interface {
	Create(ctx context.Context, userID, tripID uuid.UUID, in ShareInput) (*model.TripShare, error)
	List(ctx context.Context, userID, tripID uuid.UUID) ([]model.TripShare, error)
	Revoke(ctx context.Context, userID, shareID uuid.UUID) error
	Resolve(ctx context.Context, token, passcode string) (*SharedTrip, error)
	Close()
}

type shareService struct {
	shareRepo  repository.ShareRepository
	tripRepo   repository.TripRepository
	loader     *TripDataLoader
	cache      *cache.Client
	logChannel chan model.ShareAccessLog
	logDone    chan struct{}
	logMu      sync.Mutex
	logClosed  bool
	now        func() time.Time
}

// NewShareService creates a new share service and starts its access log
// worker.
func NewShareService(
	shareRepo repository.ShareRepository,
	tripRepo repository.TripRepository,
	loader *TripDataLoader,
	cache *cache.Client,
) ShareService {
	service := &shareService{
		shareRepo:  shareRepo,
		tripRepo:   tripRepo,
		loader:     loader,
		cache:      cache,
		logChannel: make(chan model.ShareAccessLog, 100),
		logDone:    make(chan struct{}),
		now:        time.Now,
	}

	// Start async log worker
	go service.logWorker(context.Background())

	return service
}

// logWorker persists share access logs asynchronously in batches.
func (s *shareService) logWorker(ctx context.Context) {
	defer close(s.logDone)
	batch := make([]model.ShareAccessLog, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case log, ok := <-s.logChannel:
			if !ok {
				// Channel closed, flush remaining logs
				if len(batch) > 0 {
					_ = s.shareRepo.CreateAccessLogs(ctx, batch)
				}
				return
			}
			batch = append(batch, log)
			if len(batch) >= 10 {
				_ = s.shareRepo.CreateAccessLogs(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			// Flush batch periodically
			if len(batch) > 0 {
				_ = s.shareRepo.CreateAccessLogs(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the access log worker and waits for its final flush. Safe to
// call more than once; attempts logged after Close are dropped.
func (s *shareService) Close() {
	s.logMu.Lock()
	if !s.logClosed {
		s.logClosed = true
		close(s.logChannel)
	}
	s.logMu.Unlock()
	<-s.logDone
}

func (s *shareService) logAccess(shareID *uuid.UUID, token string, outcome model.ShareAccessOutcome) {
	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	log := model.ShareAccessLog{
		ShareID:     shareID,
		TokenPrefix: prefix,
		Outcome:     outcome,
	}
	s.logMu.Lock()
	defer s.logMu.Unlock()
	if s.logClosed {
		return
	}
	select {
	case s.logChannel <- log:
	default:
		// Channel full, drop log to avoid blocking
	}
}

// Create issues a new share link for a trip the user owns. The passcode, when
// set, is stored as a bcrypt hash and cannot be recovered later.
func (s *shareService) Create(ctx context.Context, userID, tripID uuid.UUID, in ShareInput) (*model.TripShare, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	token, err := generateShareToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	share := &model.TripShare{
		TripID:           tripID,
		CreatedBy:        userID,
		Token:            token,
		CanViewAttendees: in.CanViewAttendees,
		CanViewExpenses:  in.CanViewExpenses,
		CanViewSchedule:  in.CanViewSchedule,
		ExpiresAt:        in.ExpiresAt,
	}
	if in.Passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Passcode), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash passcode: %w", err)
		}
		share.PasscodeHash = string(hash)
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return share, nil
}

// List returns a trip's shares for its owner, newest first.
func (s *shareService) List(ctx context.Context, userID, tripID uuid.UUID) ([]model.TripShare, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return s.shareRepo.ListByTrip(ctx, tripID, userID)
}

// Revoke permanently disables a share link the user created.
func (s *shareService) Revoke(ctx context.Context, userID, shareID uuid.UUID) error {
	if err := s.shareRepo.Revoke(ctx, shareID, userID, s.now()); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrShareNotFound
		}
		return fmt.Errorf("revoke share: %w", err)
	}
	return nil
}

// Resolve exchanges a share token (and passcode, when the share has one) for
// the trip's read-only view. Checks run in a fixed order so each failure maps
// to a distinct outcome: malformed token, no match, expired or revoked, then
// wrong passcode.
func (s *shareService) Resolve(ctx context.Context, token, passcode string) (*SharedTrip, error) {
	if len(token) < minTokenLength {
		s.logAccess(nil, token, model.ShareAccessInvalid)
		return nil, errors.ErrInvalidShareToken
	}

	share, err := s.shareRepo.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.logAccess(nil, token, model.ShareAccessNotFound)
			return nil, errors.ErrShareNotFound
		}
		return nil, fmt.Errorf("find share: %w", err)
	}

	now := s.now()
	if !share.Usable(now) {
		outcome := model.ShareAccessExpired
		if share.RevokedAt != nil {
			outcome = model.ShareAccessRevoked
		}
		s.logAccess(&share.ID, token, outcome)
		return nil, errors.ErrShareExpiredOrRevoked
	}

	if share.PasscodeHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(share.PasscodeHash), []byte(passcode)); err != nil {
			s.logAccess(&share.ID, token, model.ShareAccessBadPasscode)
			return nil, errors.ErrInvalidPasscode
		}
	}

	// Passcode checked; from here the cached payload is safe to serve.
	cacheKey := sharePayloadCacheKey(token)
	var cached SharedTrip
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		s.logAccess(&share.ID, token, model.ShareAccessOK)
		return &cached, nil
	}

	view, err := s.project(ctx, share)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, cacheKey, view, sharePayloadTTL)
	s.logAccess(&share.ID, token, model.ShareAccessOK)
	return view, nil
}

// project builds the field-limited view the share's flags allow.
func (s *shareService) project(ctx context.Context, share *model.TripShare) (*SharedTrip, error) {
	trip, err := s.tripRepo.FindByID(ctx, share.TripID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	snapshot, err := s.loader.Load(ctx, share.TripID)
	if err != nil {
		return nil, fmt.Errorf("load trip data: %w", err)
	}

	view := &SharedTrip{
		TripID:           trip.ID,
		TripName:         trip.Name,
		CanViewAttendees: share.CanViewAttendees,
		CanViewExpenses:  share.CanViewExpenses,
		CanViewSchedule:  share.CanViewSchedule,
		Attendees:        []model.PublicAttendee{},
		Expenses:         []model.PublicExpense{},
		Schedule:         []model.PublicScheduleItem{},
	}

	if share.CanViewAttendees {
		view.Attendees = make([]model.PublicAttendee, len(snapshot.Attendees))
		for i, a := range snapshot.Attendees {
			view.Attendees[i] = model.PublicAttendee{ID: a.ID, Name: a.Name}
		}
	}

	if share.CanViewExpenses {
		view.Expenses = make([]model.PublicExpense, len(snapshot.Expenses))
		for i, e := range snapshot.Expenses {
			view.Expenses[i] = model.PublicExpense{
				ID:          e.ID,
				Description: e.Description,
				Amount:      e.Amount,
				Category:    e.Category,
				PaidBy:      e.PaidBy,
				Payers:      report.PayerSummary(e),
				CreatedAt:   e.CreatedAt,
			}
		}
		sort.SliceStable(view.Expenses, func(i, j int) bool {
			return view.Expenses[i].CreatedAt.After(view.Expenses[j].CreatedAt)
		})
	}

	if share.CanViewSchedule {
		view.Schedule = make([]model.PublicScheduleItem, len(snapshot.Schedule))
		for i, item := range snapshot.Schedule {
			view.Schedule[i] = model.PublicScheduleItem{
				ID:    item.ID,
				Title: item.Title,
				Date:  item.Date,
				Time:  item.Time,
			}
		}
		sort.SliceStable(view.Schedule, func(i, j int) bool {
			return view.Schedule[i].Date < view.Schedule[j].Date
		})
	}

	return view, nil
}

// generateShareToken returns a 32 character hex token from 16 random bytes.
func generateShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func sharePayloadCacheKey(token string) string {
	return "share_payload:" + token
}
