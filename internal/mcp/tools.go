package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tably/internal/reservations/service"
	apperrors "tably/pkg/errors"
	"tably/pkg/model"
	"tably/pkg/timetext"
)

// Tool is the contract every exposed tool satisfies. Execute returns the
// human-readable text a client renders; reservation rule violations come
// back as polite text, not protocol errors.
type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Execute(ctx context.Context, args map[string]any) (string, error)
}

func Tools(svc service.ReservationService) []Tool {
	return []Tool{
		&checkAvailabilityTool{svc: svc},
		&bookTableTool{svc: svc},
		&cancelReservationTool{svc: svc},
		&viewReservationsTool{svc: svc},
		&availableTimeslotsTool{svc: svc},
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		return int(n), err
	case string:
		return strconv.Atoi(v)
	case nil:
		return 0, fmt.Errorf("missing required argument: %s", key)
	default:
		return 0, fmt.Errorf("argument %s must be a number", key)
	}
}

// renderDomainError converts a typed reservation error into the polite
// text a conversational client should show. Unexpected errors are passed
// through for the server to report as tool failures.
func renderDomainError(err error) (string, error) {
	appErr := apperrors.AsAppError(err)
	switch appErr.Code {
	case apperrors.CodeClosed, apperrors.CodePartySize:
		return "Sorry, " + appErr.Message, nil
	case apperrors.CodeInvalidSlot:
		return "Invalid time slot: " + appErr.Message, nil
	case apperrors.CodeNoAvailability:
		return "Sorry, " + appErr.Message + ". Try get_available_timeslots to find alternatives.", nil
	case apperrors.CodeParse, apperrors.CodeValidation, apperrors.CodeInvalidInput:
		return "Error: " + appErr.Message, nil
	case apperrors.CodeNotFound:
		return "✗ " + appErr.Message + ". Please check the ID and try again.", nil
	case apperrors.CodeAlreadyCancelled:
		return "✗ " + appErr.Message + ".", nil
	default:
		return "", err
	}
}

func timetextDateLong(input string) (string, error) {
	d, err := timetext.ParseDate(input)
	if err != nil {
		return "", err
	}
	return d.Long(), nil
}

func tableLine(t model.Table) string {
	return fmt.Sprintf("Table %d (%d seats, %s)", t.ID, t.Capacity, t.Location)
}

type checkAvailabilityTool struct {
	svc service.ReservationService
}

func (t *checkAvailabilityTool) Name() string { return "check_availability" }

func (t *checkAvailabilityTool) Description() string {
	return "Check if tables are available for a specific date, time, and party size."
}

func (t *checkAvailabilityTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"date": {"type": "string", "description": "Date in YYYY-MM-DD format (e.g., '2025-12-15')"},
			"time_str": {"type": "string", "description": "Time in format like '7pm', '19:00', or '7:30 PM'"},
			"party_size": {"type": "integer", "description": "Number of people"}
		},
		"required": ["date", "time_str", "party_size"]
	}`)
}

func (t *checkAvailabilityTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	partySize, err := intArg(args, "party_size")
	if err != nil {
		return "Error: " + err.Error(), nil
	}

	availability, err := t.svc.CheckAvailability(ctx, stringArg(args, "date"), stringArg(args, "time_str"), partySize)
	if err != nil {
		return renderDomainError(err)
	}

	date := availability.Slot.Date.Long()
	at := availability.Slot.Time.Clock12()

	if !availability.Available() {
		return fmt.Sprintf("✗ No tables available for %d people on %s at %s", partySize, date, at), nil
	}

	lines := make([]string, 0, len(availability.Tables))
	for _, tbl := range availability.Tables {
		lines = append(lines, tableLine(tbl))
	}
	return fmt.Sprintf("✓ Available! Tables for %d people on %s at %s:\n%s",
		partySize, date, at, strings.Join(lines, ", ")), nil
}

type bookTableTool struct {
	svc service.ReservationService
}

func (t *bookTableTool) Name() string { return "book_table" }

func (t *bookTableTool) Description() string {
	return "Create a new table reservation."
}

func (t *bookTableTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "Customer name"},
			"party_size": {"type": "integer", "description": "Number of people"},
			"date": {"type": "string", "description": "Date in YYYY-MM-DD format"},
			"time_str": {"type": "string", "description": "Time in format like '7pm', '19:00', or '7:30 PM'"},
			"phone": {"type": "string", "description": "Contact phone number (optional)"},
			"email": {"type": "string", "description": "Contact email (optional)"},
			"notes": {"type": "string", "description": "Special requests or notes (optional)"}
		},
		"required": ["name", "party_size", "date", "time_str"]
	}`)
}

func (t *bookTableTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	partySize, err := intArg(args, "party_size")
	if err != nil {
		return "Error: " + err.Error(), nil
	}

	req := &model.BookingRequest{
		CustomerName: stringArg(args, "name"),
		PartySize:    partySize,
		Date:         stringArg(args, "date"),
		Time:         stringArg(args, "time_str"),
		Phone:        stringArg(args, "phone"),
		Email:        stringArg(args, "email"),
		Notes:        stringArg(args, "notes"),
	}

	res, err := t.svc.BookTable(ctx, req)
	if err != nil {
		return renderDomainError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✓ Reservation Confirmed!\n\n")
	fmt.Fprintf(&b, "Reservation ID: %s\n", res.ID)
	fmt.Fprintf(&b, "Customer: %s\n", res.CustomerName)
	fmt.Fprintf(&b, "Party Size: %d people\n", res.PartySize)
	fmt.Fprintf(&b, "Date: %s\n", res.Slot.Date.Long())
	fmt.Fprintf(&b, "Time: %s\n", res.Slot.Time.Clock12())
	fmt.Fprintf(&b, "Table: %d (%s)\n", res.TableID, res.TableLocation)
	if res.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", res.Phone)
	}
	if res.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", res.Email)
	}
	if res.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", res.Notes)
	}
	return strings.TrimSpace(b.String()), nil
}

type cancelReservationTool struct {
	svc service.ReservationService
}

func (t *cancelReservationTool) Name() string { return "cancel_reservation" }

func (t *cancelReservationTool) Description() string {
	return "Cancel an existing reservation by ID."
}

func (t *cancelReservationTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"reservation_id": {"type": "string", "description": "The reservation ID (e.g., 'RES0001')"}
		},
		"required": ["reservation_id"]
	}`)
}

func (t *cancelReservationTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	res, err := t.svc.CancelReservation(ctx, stringArg(args, "reservation_id"))
	if err != nil {
		return renderDomainError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✓ Reservation Cancelled\n\n")
	fmt.Fprintf(&b, "Reservation ID: %s\n", res.ID)
	fmt.Fprintf(&b, "Customer: %s\n", res.CustomerName)
	fmt.Fprintf(&b, "Date: %s\n", res.Slot.Date)
	fmt.Fprintf(&b, "Time: %s\n", res.Slot.Time)
	fmt.Fprintf(&b, "Party Size: %d people\n\n", res.PartySize)
	fmt.Fprintf(&b, "The table has been released and is now available for booking.")
	return b.String(), nil
}

type viewReservationsTool struct {
	svc service.ReservationService
}

func (t *viewReservationsTool) Name() string { return "view_reservations" }

func (t *viewReservationsTool) Description() string {
	return "View all reservations with optional filtering by date or customer name."
}

func (t *viewReservationsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"date": {"type": "string", "description": "Filter by date (YYYY-MM-DD format, optional)"},
			"customer_name": {"type": "string", "description": "Filter by customer name (optional, partial match)"},
			"status": {"type": "string", "description": "Filter by status: 'active' or 'cancelled' (optional)"}
		}
	}`)
}

func (t *viewReservationsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	filter := model.ListFilter{
		Date:   stringArg(args, "date"),
		Name:   stringArg(args, "customer_name"),
		Status: stringArg(args, "status"),
	}

	reservations, err := t.svc.ListReservations(ctx, filter)
	if err != nil {
		return renderDomainError(err)
	}

	if len(reservations) == 0 {
		if filter.Date == "" && filter.Name == "" && filter.Status == "" {
			return "No reservations found.", nil
		}
		return "No reservations found matching your criteria.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d reservation(s):\n\n", len(reservations))
	for _, res := range reservations {
		fmt.Fprintf(&b, "---\n")
		fmt.Fprintf(&b, "ID: %s\n", res.ID)
		fmt.Fprintf(&b, "Customer: %s\n", res.CustomerName)
		fmt.Fprintf(&b, "Date: %s at %s\n", res.Slot.Date, res.Slot.Time)
		fmt.Fprintf(&b, "Party: %d people\n", res.PartySize)
		fmt.Fprintf(&b, "Table: %d (%s)\n", res.TableID, res.TableLocation)
		fmt.Fprintf(&b, "Status: %s\n", res.Status)
		if res.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", res.Phone)
		}
		if res.Email != "" {
			fmt.Fprintf(&b, "Email: %s\n", res.Email)
		}
		if res.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", res.Notes)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

type availableTimeslotsTool struct {
	svc service.ReservationService
}

func (t *availableTimeslotsTool) Name() string { return "get_available_timeslots" }

func (t *availableTimeslotsTool) Description() string {
	return "Find all available time slots for a specific date and party size."
}

func (t *availableTimeslotsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"date": {"type": "string", "description": "Date in YYYY-MM-DD format"},
			"party_size": {"type": "integer", "description": "Number of people"}
		},
		"required": ["date", "party_size"]
	}`)
}

func (t *availableTimeslotsTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	partySize, err := intArg(args, "party_size")
	if err != nil {
		return "Error: " + err.Error(), nil
	}

	date := stringArg(args, "date")
	slots, err := t.svc.AvailableSlotsForDate(ctx, date, partySize)
	if err != nil {
		return renderDomainError(err)
	}

	parsed, err := timetextDateLong(date)
	if err != nil {
		return "Error: " + err.Error(), nil
	}

	if len(slots) == 0 {
		return fmt.Sprintf("Sorry, no available slots for %d people on %s. The restaurant is fully booked.", partySize, parsed), nil
	}

	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Clock12())
	}
	return fmt.Sprintf("Available time slots for %d people on %s:\n\n%s\n\nUse book_table to reserve your preferred time.",
		partySize, parsed, strings.Join(formatted, ", ")), nil
}
