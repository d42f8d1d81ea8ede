package handler

import (
	"encoding/json"
	"net/http"

	"tably/internal/reservations/service"
	httputil "tably/pkg/http"
	"tably/pkg/logger"
	"tably/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := httputil.RequireQuery(r, "date")
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	timeOfDay, err := httputil.RequireQuery(r, "time")
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	partySize, err := httputil.ExtractPartySize(r)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), date, timeOfDay, partySize)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) AvailableSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := httputil.RequireQuery(r, "date")
	if err != nil {
		h.writeError(w, "AvailableSlots", err)
		return
	}

	partySize, err := httputil.ExtractPartySize(r)
	if err != nil {
		h.writeError(w, "AvailableSlots", err)
		return
	}

	slots, err := h.service.AvailableSlotsForDate(r.Context(), date, partySize)
	if err != nil {
		h.writeError(w, "AvailableSlots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "AvailableSlots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.BookTable(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	reservation, err := h.service.CancelReservation(r.Context(), id)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	filter := model.ListFilter{
		Date:   query.Get("date"),
		Name:   query.Get("name"),
		Status: query.Get("status"),
	}

	reservations, err := h.service.ListReservations(r.Context(), filter)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.CheckAvailability)
	router.GET("/api/v1/availability/slots", h.AvailableSlots)
	router.POST("/api/v1/reservations", h.Book)
	router.GET("/api/v1/reservations", h.List)
	router.POST("/api/v1/reservations/id/:id/cancel", h.Cancel)
}
