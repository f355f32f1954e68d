package controllers

import (
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// AttendanceRequest is the request body for PUT /events-attendance/{eventId}.
type AttendanceRequest struct {
	Answer string `json:"answer"`
}

// Validate implements Validator.
func (a AttendanceRequest) Validate() []string {
	if !domain.AttendeeAnswer(a.Answer).Valid() {
		return []string{"answer must be one of accepted, maybe, rejected"}
	}
	return nil
}

// AttendeeSuccessResponse is the success response envelope for a single attendee row.
type AttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AttendeeListSuccessResponse is the success response envelope for GET /events/{id}/attendees.
type AttendeeListSuccessResponse struct {
	Data  []*domain.Attendee `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
	Events  domain.EventService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService, events domain.EventService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
		Events:  events,
	}
}

// ListEventAttendees godoc
// @Summary List the attendees of an event
// @Tags attendance
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.AttendeeListSuccessResponse "data contains the attendee rows"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/attendees [get]
func (c *AttendeeController) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	attendees, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// ListMyAttendance godoc
// @Summary List the events the caller answered
// @Description Each event carries the caller's attendee row.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} controllers.EventPageSuccessResponse "data contains the page envelope"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events-attendance [get]
func (c *AttendeeController) ListMyAttendance(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	page, err := c.Events.ListAttendedBy(r.Context(), caller.ID, helpers.ParsePage(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// GetMyAttendance godoc
// @Summary Get the caller's answer for an event
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the attendee row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events-attendance/my/{eventId} [get]
func (c *AttendeeController) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendee, err := c.Service.GetForUser(r.Context(), eventID, caller.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "attendance not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// PutMyAttendance godoc
// @Summary Record the caller's answer for an event
// @Description Creates the attendee row or overwrites its answer. Idempotent.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param body body AttendanceRequest true "Answer: accepted, maybe or rejected"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the attendee row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events-attendance/{eventId} [put]
func (c *AttendeeController) PutMyAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	var req AttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendee, err := c.Service.CreateOrUpdate(r.Context(), domain.AttendeeAnswer(req.Answer), eventID, caller.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}
