package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"tably/internal/reservations/events"
	"tably/internal/reservations/grid"
	"tably/internal/reservations/inventory"
	"tably/internal/reservations/ledger"
	"tably/internal/reservations/validator"
	apperrors "tably/pkg/errors"
	"tably/pkg/logger"
	"tably/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "ERROR", Format: "TEXT", Output: io.Discard})
}

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(model.TimeOfDay{Hour: 11}, model.TimeOfDay{Hour: 21}, 30)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

func newService(t *testing.T, tables []model.Table) ReservationService {
	t.Helper()
	inv, err := inventory.New(tables)
	if err != nil {
		t.Fatalf("inventory.New: %v", err)
	}
	return NewReservationService(
		inv,
		ledger.New(),
		testGrid(t),
		validator.NewBookingValidator(testLogger()),
		events.Noop{},
		8,
	)
}

func defaultService(t *testing.T) ReservationService {
	t.Helper()
	return NewReservationService(
		inventory.Default(),
		ledger.New(),
		testGrid(t),
		validator.NewBookingValidator(testLogger()),
		events.Noop{},
		8,
	)
}

func booking(name, date, timeOfDay string, partySize int) *model.BookingRequest {
	return &model.BookingRequest{
		CustomerName: name,
		PartySize:    partySize,
		Date:         date,
		Time:         timeOfDay,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if !apperrors.HasCode(err, code) {
		t.Fatalf("expected code %s, got: %v", code, err)
	}
}

func TestBookTable_AssignsSequentialIDs(t *testing.T) {
	svc := defaultService(t)
	ctx := context.Background()

	first, err := svc.BookTable(ctx, booking("Alice Smith", "2025-06-15", "19:00", 2))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if first.ID != "RES0001" {
		t.Errorf("expected RES0001, got %s", first.ID)
	}
	if first.Status != model.StatusActive {
		t.Errorf("expected active status, got %s", first.Status)
	}

	second, err := svc.BookTable(ctx, booking("Bob Jones", "2025-06-15", "19:00", 2))
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}
	if second.ID != "RES0002" {
		t.Errorf("expected RES0002, got %s", second.ID)
	}
	if second.TableID == first.TableID {
		t.Errorf("both bookings landed on table %d", first.TableID)
	}
}

func TestBookTable_FirstFitByTableID(t *testing.T) {
	svc := newService(t, []model.Table{
		{ID: 3, Capacity: 6, Location: "Private"},
		{ID: 1, Capacity: 4, Location: "Window"},
		{ID: 2, Capacity: 4, Location: "Main Hall"},
	})

	res, err := svc.BookTable(context.Background(), booking("Carol White", "2025-06-15", "18:00", 4))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	// Lowest qualifying table id wins, even though table 3 seats more.
	if res.TableID != 1 {
		t.Errorf("expected table 1, got table %d", res.TableID)
	}
}

func TestBookTable_CancelFreesTableForRebooking(t *testing.T) {
	svc := newService(t, []model.Table{{ID: 1, Capacity: 2, Location: "Window"}})
	ctx := context.Background()

	first, err := svc.BookTable(ctx, booking("Alice Smith", "2025-06-15", "19:00", 2))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err = svc.BookTable(ctx, booking("Bob Jones", "2025-06-15", "19:00", 2))
	assertCode(t, err, apperrors.CodeNoAvailability)

	cancelled, err := svc.CancelReservation(ctx, first.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.Status)
	}

	rebooked, err := svc.BookTable(ctx, booking("Bob Jones", "2025-06-15", "19:00", 2))
	if err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
	if rebooked.ID != "RES0002" {
		t.Errorf("expected fresh ID RES0002, got %s", rebooked.ID)
	}
	if rebooked.TableID != 1 {
		t.Errorf("expected freed table 1, got table %d", rebooked.TableID)
	}
}

func TestBookTable_EquivalentTimeFormsCollide(t *testing.T) {
	svc := newService(t, []model.Table{{ID: 1, Capacity: 2, Location: "Window"}})
	ctx := context.Background()

	if _, err := svc.BookTable(ctx, booking("Alice Smith", "2025-06-15", "7pm", 2)); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err := svc.BookTable(ctx, booking("Bob Jones", "June 15, 2025", "19:00", 2))
	assertCode(t, err, apperrors.CodeNoAvailability)
}

func TestBookTable_InputErrors(t *testing.T) {
	svc := defaultService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.BookingRequest
		code string
	}{
		{"unparseable date", booking("Alice Smith", "not-a-date", "19:00", 2), apperrors.CodeParse},
		{"unparseable time", booking("Alice Smith", "2025-06-15", "sevenish", 2), apperrors.CodeParse},
		{"off-grid time", booking("Alice Smith", "2025-06-15", "19:15", 2), apperrors.CodeInvalidSlot},
		{"before opening", booking("Alice Smith", "2025-06-15", "10:30", 2), apperrors.CodeClosed},
		{"at closing", booking("Alice Smith", "2025-06-15", "21:00", 2), apperrors.CodeClosed},
		{"party too large", booking("Alice Smith", "2025-06-15", "19:00", 9), apperrors.CodePartySize},
		{"party zero", booking("Alice Smith", "2025-06-15", "19:00", 0), apperrors.CodePartySize},
		{"missing name", booking("", "2025-06-15", "19:00", 2), apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BookTable(ctx, tt.req)
			assertCode(t, err, tt.code)
		})
	}
}

func TestBookTable_ConcurrentSingleWinner(t *testing.T) {
	svc := newService(t, []model.Table{{ID: 1, Capacity: 2, Location: "Window"}})
	ctx := context.Background()

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.BookTable(ctx, booking("Race Runner", "2025-06-15", "19:00", 2))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		if err == nil {
			won++
			continue
		}
		assertCode(t, err, apperrors.CodeNoAvailability)
		lost++
	}
	if won != 1 {
		t.Errorf("expected exactly 1 winner, got %d", won)
	}
	if lost != attempts-1 {
		t.Errorf("expected %d losers, got %d", attempts-1, lost)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := defaultService(t)
	ctx := context.Background()

	avail, err := svc.CheckAvailability(ctx, "2025-06-15", "19:00", 4)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	if !avail.Available() {
		t.Fatal("expected tables for a party of 4")
	}
	for _, tbl := range avail.Tables {
		if tbl.Capacity < 4 {
			t.Errorf("table %d seats only %d", tbl.ID, tbl.Capacity)
		}
	}
	for i := 1; i < len(avail.Tables); i++ {
		if avail.Tables[i-1].ID >= avail.Tables[i].ID {
			t.Errorf("tables not in ascending id order: %d before %d", avail.Tables[i-1].ID, avail.Tables[i].ID)
		}
	}

	_, err = svc.CheckAvailability(ctx, "2025-06-15", "19:00", 9)
	assertCode(t, err, apperrors.CodePartySize)
}

func TestCheckAvailability_BookedTableExcluded(t *testing.T) {
	svc := newService(t, []model.Table{{ID: 1, Capacity: 2, Location: "Window"}})
	ctx := context.Background()

	if _, err := svc.BookTable(ctx, booking("Alice Smith", "2025-06-15", "19:00", 2)); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	avail, err := svc.CheckAvailability(ctx, "2025-06-15", "19:00", 2)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	if avail.Available() {
		t.Error("booked slot still reported as available")
	}

	other, err := svc.CheckAvailability(ctx, "2025-06-15", "19:30", 2)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	if !other.Available() {
		t.Error("adjacent slot should remain available")
	}
}

func TestCancelReservation_Errors(t *testing.T) {
	svc := newService(t, []model.Table{{ID: 1, Capacity: 2, Location: "Window"}})
	ctx := context.Background()

	_, err := svc.CancelReservation(ctx, "")
	assertCode(t, err, apperrors.CodeInvalidInput)

	_, err = svc.CancelReservation(ctx, "RES9999")
	assertCode(t, err, apperrors.CodeNotFound)

	res, err := svc.BookTable(ctx, booking("Alice Smith", "2025-06-15", "19:00", 2))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// Lowercase and padded ids are normalized before lookup.
	if _, err := svc.CancelReservation(ctx, "  res0001  "); err != nil {
		t.Fatalf("cancel with unnormalized id failed: %v", err)
	}

	_, err = svc.CancelReservation(ctx, res.ID)
	assertCode(t, err, apperrors.CodeAlreadyCancelled)
}

func TestListReservations_Filters(t *testing.T) {
	svc := defaultService(t)
	ctx := context.Background()

	seed := []*model.BookingRequest{
		booking("Alice Smith", "2025-06-15", "18:00", 2),
		booking("Bob Jones", "2025-06-15", "19:00", 4),
		booking("Alicia Keys", "2025-06-16", "19:00", 2),
	}
	for _, req := range seed {
		if _, err := svc.BookTable(ctx, req); err != nil {
			t.Fatalf("seeding booking failed: %v", err)
		}
	}
	if _, err := svc.CancelReservation(ctx, "RES0002"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	all, err := svc.ListReservations(ctx, model.ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(all))
	}

	byDate, err := svc.ListReservations(ctx, model.ListFilter{Date: "2025-06-15"})
	if err != nil {
		t.Fatalf("list by date failed: %v", err)
	}
	if len(byDate) != 2 {
		t.Errorf("expected 2 reservations on 2025-06-15, got %d", len(byDate))
	}

	// Case-insensitive substring: "ali" matches Alice and Alicia.
	byName, err := svc.ListReservations(ctx, model.ListFilter{Name: "ALI"})
	if err != nil {
		t.Fatalf("list by name failed: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("expected 2 reservations matching 'ALI', got %d", len(byName))
	}

	active, err := svc.ListReservations(ctx, model.ListFilter{Status: "active"})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active reservations, got %d", len(active))
	}

	cancelled, err := svc.ListReservations(ctx, model.ListFilter{Status: "cancelled", Date: "2025-06-15"})
	if err != nil {
		t.Fatalf("combined filter failed: %v", err)
	}
	if len(cancelled) != 1 || cancelled[0].ID != "RES0002" {
		t.Errorf("expected only RES0002 cancelled on 2025-06-15, got %+v", cancelled)
	}

	_, err = svc.ListReservations(ctx, model.ListFilter{Status: "pending"})
	assertCode(t, err, apperrors.CodeInvalidInput)

	_, err = svc.ListReservations(ctx, model.ListFilter{Date: "junk"})
	assertCode(t, err, apperrors.CodeParse)
}

func TestAvailableSlotsForDate(t *testing.T) {
	svc := newService(t, []model.Table{{ID: 1, Capacity: 2, Location: "Window"}})
	ctx := context.Background()

	slots, err := svc.AvailableSlotsForDate(ctx, "2025-06-15", 2)
	if err != nil {
		t.Fatalf("slot listing failed: %v", err)
	}
	if len(slots) != 20 {
		t.Fatalf("expected 20 open slots, got %d", len(slots))
	}

	if _, err := svc.BookTable(ctx, booking("Alice Smith", "2025-06-15", "19:00", 2)); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	slots, err = svc.AvailableSlotsForDate(ctx, "2025-06-15", 2)
	if err != nil {
		t.Fatalf("slot listing failed: %v", err)
	}
	if len(slots) != 19 {
		t.Fatalf("expected 19 open slots after booking, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Hour == 19 && s.Minute == 0 {
			t.Error("booked 19:00 slot still listed as open")
		}
	}

	// Party larger than every table: no slots, not an error.
	slots, err = svc.AvailableSlotsForDate(ctx, "2025-06-15", 8)
	if err != nil {
		t.Fatalf("slot listing failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots for oversized party, got %d", len(slots))
	}
}
