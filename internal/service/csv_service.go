package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"safariplanner/internal/errors"
	"safariplanner/internal/model"
	"safariplanner/internal/repository"
)

// Row type discriminators in the first CSV column.
const (
	csvTypeAttendee = "attendee"
	csvTypeExpense  = "expense"
	csvTypeSchedule = "schedule"
)

var (
	attendeeHeader = []string{"Type", "Name", "Email", "Phone"}
	expenseHeader  = []string{"Type", "Description", "Category", "Amount", "PaidBy"}
	scheduleHeader = []string{"Type", "Title", "Date", "Time", "Description"}
)

// ImportResult reports what an import run accepted and what it skipped.
// SkippedLines holds the 1-based line numbers of rows that were malformed or
// failed validation.
type ImportResult struct {
	Attendees     int   `json:"attendees"`
	Expenses      int   `json:"expenses"`
	ScheduleItems int   `json:"schedule_items"`
	SkippedLines  []int `json:"skipped_lines,omitempty"`
}

// CSVService moves trip data in and out as CSV. The format is three
// type-discriminated blocks, each opened by its own header row.
type CSVService interface {
	Export(ctx context.Context, userID, tripID uuid.UUID) ([]byte, error)
	Import(ctx context.Context, userID, tripID uuid.UUID, r io.Reader) (*ImportResult, error)
}

type csvService struct {
	tripRepo        repository.TripRepository
	loader          *TripDataLoader
	attendeeService AttendeeService
	expenseService  ExpenseService
	scheduleService ScheduleService
}

// NewCSVService creates a new CSV service. Import writes through the normal
// services so validation and cache invalidation apply to imported rows too.
func NewCSVService(
	tripRepo repository.TripRepository,
	loader *TripDataLoader,
	attendeeService AttendeeService,
	expenseService ExpenseService,
	scheduleService ScheduleService,
) CSVService {
	return &csvService{
		tripRepo:        tripRepo,
		loader:          loader,
		attendeeService: attendeeService,
		expenseService:  expenseService,
		scheduleService: scheduleService,
	}
}

// Export renders the trip's attendees, expenses and schedule as CSV.
func (s *csvService) Export(ctx context.Context, userID, tripID uuid.UUID) ([]byte, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	snapshot, err := s.loader.Load(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load trip data: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(attendeeHeader); err != nil {
		return nil, err
	}
	for _, a := range snapshot.Attendees {
		if err := w.Write([]string{csvTypeAttendee, a.Name, a.Email, a.Phone}); err != nil {
			return nil, err
		}
	}

	if err := w.Write(expenseHeader); err != nil {
		return nil, err
	}
	for _, e := range snapshot.Expenses {
		row := []string{csvTypeExpense, e.Description, string(e.Category), e.Amount.StringFixed(2), e.PaidBy}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if err := w.Write(scheduleHeader); err != nil {
		return nil, err
	}
	for _, item := range snapshot.Schedule {
		row := []string{csvTypeSchedule, item.Title, item.Date, item.Time, item.Description}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import reads CSV rows into a trip the user owns. Header and blank rows are
// skipped; each data row is dispatched on its type discriminator and
// malformed rows are skipped individually, never aborting the run.
func (s *csvService) Import(ctx context.Context, userID, tripID uuid.UUID, r io.Reader) (*ImportResult, error) {
	if _, err := s.tripRepo.FindByIDForOwner(ctx, tripID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.SkippedLines = append(result.SkippedLines, line)
			continue
		}
		if isHeaderOrBlank(record) {
			continue
		}
		if err := s.importRow(ctx, userID, tripID, record); err != nil {
			result.SkippedLines = append(result.SkippedLines, line)
			continue
		}
		switch record[0] {
		case csvTypeAttendee:
			result.Attendees++
		case csvTypeExpense:
			result.Expenses++
		case csvTypeSchedule:
			result.ScheduleItems++
		}
	}
	return result, nil
}

func isHeaderOrBlank(record []string) bool {
	if len(record) == 0 {
		return true
	}
	first := strings.TrimSpace(record[0])
	if first == "" {
		return true
	}
	return strings.EqualFold(first, "Type")
}

// importRow persists one data row through the matching service.
func (s *csvService) importRow(ctx context.Context, userID, tripID uuid.UUID, record []string) error {
	switch record[0] {
	case csvTypeAttendee:
		if len(record) < len(attendeeHeader) || strings.TrimSpace(record[1]) == "" {
			return errors.ErrMalformedRow
		}
		_, err := s.attendeeService.Create(ctx, userID, tripID, AttendeeInput{
			Name:  strings.TrimSpace(record[1]),
			Email: strings.TrimSpace(record[2]),
			Phone: strings.TrimSpace(record[3]),
		})
		return err
	case csvTypeExpense:
		if len(record) < len(expenseHeader) {
			return errors.ErrMalformedRow
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil {
			return errors.ErrMalformedRow
		}
		_, err = s.expenseService.Create(ctx, userID, tripID, ExpenseInput{
			Description: strings.TrimSpace(record[1]),
			Category:    model.ExpenseCategory(strings.TrimSpace(record[2])),
			Amount:      amount,
			PaidBy:      strings.TrimSpace(record[4]),
		})
		return err
	case csvTypeSchedule:
		if len(record) < len(scheduleHeader) || strings.TrimSpace(record[1]) == "" {
			return errors.ErrMalformedRow
		}
		_, err := s.scheduleService.Create(ctx, userID, tripID, ScheduleInput{
			Title:       strings.TrimSpace(record[1]),
			Date:        strings.TrimSpace(record[2]),
			Time:        strings.TrimSpace(record[3]),
			Description: strings.TrimSpace(record[4]),
		})
		return err
	default:
		return errors.ErrMalformedRow
	}
}
