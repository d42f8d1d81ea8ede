// Package service implements the allocation engine: the decision logic
// that answers availability queries, assigns tables to bookings, and
// releases them on cancellation. All errors are converted to typed
// AppErrors at this boundary; the engine itself never logs, adapters do.
package service

import (
	"context"
	"errors"
	"strings"

	reserrors "tably/internal/reservations/errors"
	"tably/internal/reservations/events"
	"tably/internal/reservations/grid"
	"tably/internal/reservations/inventory"
	"tably/internal/reservations/ledger"
	"tably/internal/reservations/validator"
	apperrors "tably/pkg/errors"
	"tably/pkg/model"
	"tably/pkg/sanitizer"
	"tably/pkg/timetext"
)

type ReservationService interface {
	CheckAvailability(ctx context.Context, dateInput, timeInput string, partySize int) (*model.Availability, error)
	BookTable(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*model.Reservation, error)
	ListReservations(ctx context.Context, filter model.ListFilter) ([]model.Reservation, error)
	AvailableSlotsForDate(ctx context.Context, dateInput string, partySize int) ([]model.TimeOfDay, error)
}

type reservationService struct {
	inv          *inventory.Inventory
	ledger       *ledger.Ledger
	grid         *grid.Grid
	validator    *validator.BookingValidator
	events       events.Publisher
	maxPartySize int
}

func NewReservationService(
	inv *inventory.Inventory,
	lg *ledger.Ledger,
	g *grid.Grid,
	v *validator.BookingValidator,
	pub events.Publisher,
	maxPartySize int,
) ReservationService {
	return &reservationService{
		inv:          inv,
		ledger:       lg,
		grid:         g,
		validator:    v,
		events:       pub,
		maxPartySize: maxPartySize,
	}
}

func (s *reservationService) CheckAvailability(ctx context.Context, dateInput, timeInput string, partySize int) (*model.Availability, error) {
	slot, err := s.normalizeSlot(dateInput, timeInput)
	if err != nil {
		return nil, err
	}
	if err := s.checkPartySize(partySize); err != nil {
		return nil, err
	}

	return &model.Availability{
		Slot:      slot,
		PartySize: partySize,
		Tables:    s.freeTables(slot, partySize),
	}, nil
}

func (s *reservationService) BookTable(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	slot, err := s.normalizeSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if err := s.checkPartySize(req.PartySize); err != nil {
		return nil, err
	}

	candidates := s.freeTables(slot, req.PartySize)
	if len(candidates) == 0 {
		return nil, apperrors.NoAvailability(req.PartySize, slot.Date.Long(), slot.Time.Clock12())
	}

	// First-fit by the inventory's stable id ordering, not best-fit by
	// capacity. A candidate can vanish between the availability scan and
	// the insert when a concurrent booking wins the slot; the ledger
	// re-validates atomically and we move on to the next table.
	for _, table := range candidates {
		res, err := s.ledger.Insert(model.Reservation{
			CustomerName:  req.CustomerName,
			PartySize:     req.PartySize,
			Slot:          slot,
			TableID:       table.ID,
			TableLocation: table.Location,
			Phone:         req.Phone,
			Email:         req.Email,
			Notes:         req.Notes,
		})
		if err != nil {
			if errors.Is(err, reserrors.ErrSlotTaken) {
				continue
			}
			return nil, apperrors.Internal("Failed to record reservation", err)
		}

		s.events.ReservationConfirmed(ctx, res)
		return &res, nil
	}

	return nil, apperrors.NoAvailability(req.PartySize, slot.Date.Long(), slot.Time.Clock12())
}

func (s *reservationService) CancelReservation(ctx context.Context, id string) (*model.Reservation, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return nil, apperrors.InvalidInput("reservation ID cannot be empty")
	}

	res, err := s.ledger.Cancel(id)
	if err != nil {
		switch {
		case errors.Is(err, reserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Reservation", id)
		case errors.Is(err, reserrors.ErrAlreadyCancelled):
			return nil, apperrors.AlreadyCancelled(id)
		default:
			return nil, apperrors.Internal("Failed to cancel reservation", err)
		}
	}

	s.events.ReservationCancelled(ctx, res)
	return &res, nil
}

func (s *reservationService) ListReservations(ctx context.Context, filter model.ListFilter) ([]model.Reservation, error) {
	var date model.Date
	if filter.Date != "" {
		var err error
		date, err = timetext.ParseDate(filter.Date)
		if err != nil {
			return nil, apperrors.Parse("date", filter.Date, "use format YYYY-MM-DD")
		}
	}

	status := strings.ToLower(strings.TrimSpace(filter.Status))
	if status != "" && status != model.StatusActive && status != model.StatusCancelled {
		return nil, apperrors.InvalidInput("status filter must be 'active' or 'cancelled', got: " + filter.Status)
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))

	return s.ledger.Query(func(r model.Reservation) bool {
		if date != "" && r.Slot.Date != date {
			return false
		}
		if name != "" && !strings.Contains(strings.ToLower(r.CustomerName), name) {
			return false
		}
		if status != "" && r.Status != status {
			return false
		}
		return true
	}), nil
}

func (s *reservationService) AvailableSlotsForDate(ctx context.Context, dateInput string, partySize int) ([]model.TimeOfDay, error) {
	date, err := timetext.ParseDate(dateInput)
	if err != nil {
		return nil, apperrors.Parse("date", dateInput, "use format YYYY-MM-DD")
	}
	if err := s.checkPartySize(partySize); err != nil {
		return nil, err
	}

	open := make([]model.TimeOfDay, 0)
	for _, t := range s.grid.Slots() {
		slot := model.TimeSlot{Date: date, Time: t}
		if len(s.freeTables(slot, partySize)) > 0 {
			open = append(open, t)
		}
	}
	return open, nil
}

// --- Helpers ---

func (s *reservationService) sanitize(req *model.BookingRequest) {
	req.CustomerName = sanitizer.CustomerName(req.CustomerName)
	req.Phone = sanitizer.Phone(req.Phone)
	req.Email = sanitizer.Email(req.Email)
	req.Notes = sanitizer.Notes(req.Notes)
}

func (s *reservationService) normalizeSlot(dateInput, timeInput string) (model.TimeSlot, error) {
	date, err := timetext.ParseDate(dateInput)
	if err != nil {
		return model.TimeSlot{}, apperrors.Parse("date", dateInput, "use format YYYY-MM-DD")
	}

	t, err := timetext.ParseTimeOfDay(timeInput)
	if err != nil {
		return model.TimeSlot{}, apperrors.Parse("time", timeInput, "use formats like '19:00', '7pm' or '7:30 PM'")
	}

	if !s.grid.OnGrid(t) {
		return model.TimeSlot{}, apperrors.InvalidSlot(t.String(), s.grid.SlotMinutes())
	}
	if !s.grid.WithinHours(t) {
		return model.TimeSlot{}, apperrors.Closed(t.Clock12(), s.grid.Opening().Clock12(), s.grid.Closing().Clock12())
	}

	return model.TimeSlot{Date: date, Time: t}, nil
}

func (s *reservationService) checkPartySize(partySize int) error {
	if partySize < 1 || partySize > s.maxPartySize {
		return apperrors.PartySize(partySize, s.maxPartySize)
	}
	return nil
}

// freeTables returns the candidate set: tables seating the party with no
// active reservation for the slot, in stable id order.
func (s *reservationService) freeTables(slot model.TimeSlot, partySize int) []model.Table {
	candidates := s.inv.WithCapacityAtLeast(partySize)
	free := candidates[:0]
	for _, table := range candidates {
		if !s.ledger.ActiveConflict(table.ID, slot) {
			free = append(free, table)
		}
	}
	return free
}
