package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"mergingtonactivities/internal/delivery/http/helpers"
	"mergingtonactivities/internal/domain"
)

// Error details returned to clients.
const (
	detailActivityNotFound = "Activity not found"
	detailAlreadySignedUp  = "Student is already signed up for this activity"
	detailNotRegistered    = "Student is not registered for this activity"
	detailActivityFull     = "Activity is full"
)

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// ListActivities godoc
// @Summary List all activities
// @Description Returns every activity keyed by name, with its description, schedule, capacity and current participants.
// @Tags activities
// @Produce json
// @Success 200 {object} map[string]domain.Activity
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := c.Service.ListActivities(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, activities)
}

// GetActivity godoc
// @Summary Get one activity
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Success 200 {object} domain.Activity
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name} [get]
func (c *ActivityController) GetActivity(w http.ResponseWriter, r *http.Request) {
	name, ok := helpers.RequirePathValue(w, r, "name")
	if !ok {
		return
	}
	activity, err := c.Service.GetActivity(r.Context(), name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, activity)
}

// Signup godoc
// @Summary Sign up a student for an activity
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Param email query string true "Student email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "already signed up"
// @Failure 404 {object} helpers.ErrorResponse "activity not found"
// @Failure 422 {object} helpers.ErrorResponse "missing email"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name}/signup [post]
func (c *ActivityController) Signup(w http.ResponseWriter, r *http.Request) {
	name, ok := helpers.RequirePathValue(w, r, "name")
	if !ok {
		return
	}
	email, ok := helpers.RequireQuery(w, r, "email")
	if !ok {
		return
	}

	msg, err := c.Service.Signup(r.Context(), name, email)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "participant signed up", "activity", name, "email", email)
	helpers.WriteMessage(w, http.StatusOK, msg)
}

// Unregister godoc
// @Summary Remove a student from an activity
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Param email query string true "Student email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "not registered"
// @Failure 404 {object} helpers.ErrorResponse "activity not found"
// @Failure 422 {object} helpers.ErrorResponse "missing email"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name}/unregister [delete]
func (c *ActivityController) Unregister(w http.ResponseWriter, r *http.Request) {
	name, ok := helpers.RequirePathValue(w, r, "name")
	if !ok {
		return
	}
	email, ok := helpers.RequireQuery(w, r, "email")
	if !ok {
		return
	}

	msg, err := c.Service.Unregister(r.Context(), name, email)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "participant unregistered", "activity", name, "email", email)
	helpers.WriteMessage(w, http.StatusOK, msg)
}

func (c *ActivityController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, domain.ErrAlreadySignedUp):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailAlreadySignedUp)
	case errors.Is(err, domain.ErrNotRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailNotRegistered)
	case errors.Is(err, domain.ErrActivityFull):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailActivityFull)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		c.internalError(w, r, err)
	}
}

func (c *ActivityController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
}
