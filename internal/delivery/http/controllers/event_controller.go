package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

const maxEventNameLen = 255

// CreateEventRequest is the request body for POST /events. The organizer is the caller.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	When        time.Time `json:"when"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, "name is required")
	} else if len(name) > maxEventNameLen {
		errs = append(errs, "name must be at most 255 characters")
	}
	if c.When.IsZero() {
		errs = append(errs, "when is required (RFC3339)")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{id}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	When        *time.Time `json:"when"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name == nil && u.Description == nil && u.When == nil {
		errs = append(errs, "at least one of name, description, when is required")
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			errs = append(errs, "name cannot be empty")
		} else if len(name) > maxEventNameLen {
			errs = append(errs, "name must be at most 255 characters")
		}
	}
	if u.When != nil && u.When.IsZero() {
		errs = append(errs, "when cannot be empty")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventPageSuccessResponse is the success response envelope for event listings.
type EventPageSuccessResponse struct {
	Data  *domain.Page[*domain.Event] `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Lists events newest first with attendee counts. when: 1 all, 2 today, 3 tomorrow, 4 this week, 5 next week.
// @Tags events
// @Produce json
// @Param when query int false "Time window (1-5)" default(1)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} controllers.EventPageSuccessResponse "data contains the page envelope"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.ListEvents(r.Context(), helpers.ParseEventsFilter(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// ListOrganizedBy godoc
// @Summary List events organized by a user
// @Tags events
// @Produce json
// @Param userId path int true "Organizer user ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} controllers.EventPageSuccessResponse "data contains the page envelope"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-organized-by-user/{userId} [get]
func (c *EventController) ListOrganizedBy(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := helpers.PathID(w, r, "userId")
	if !ok {
		return
	}
	page, err := c.Service.ListOrganizedBy(r.Context(), organizerID, helpers.ParsePage(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its attendee counts.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create a new event
// @Description The authenticated user becomes the organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		When:        req.When,
	}, caller.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Only the organizer may update. Omitted fields are unchanged.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, domain.UpdateEventInput{
		Name:        req.Name,
		Description: req.Description,
		When:        req.When,
	}, caller.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Only the organizer may delete. Attendee rows are removed with the event.
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id, caller.ID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
