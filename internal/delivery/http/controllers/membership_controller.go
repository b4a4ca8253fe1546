package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alekpstro/UGEvents/internal/delivery/http/helpers"
	"github.com/alekpstro/UGEvents/internal/delivery/http/middleware"
	"github.com/alekpstro/UGEvents/internal/domain"
)

// JoinEventResponse is the data payload for a successful join.
type JoinEventResponse struct {
	Message string `json:"message"`
}

type MembershipController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewMembershipController(logger *slog.Logger, svc domain.MembershipService) *MembershipController {
	return &MembershipController{
		Logger:  logger,
		Service: svc,
	}
}

// Join godoc
// @Summary Join an event
// @Description Add the authenticated user to an event's participants. A user may join each event at most once; joining twice fails with error.code conflict.
// @Tags memberships
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Security BearerAuth
// @Router /events/{eventID}/join [post]
func (c *MembershipController) Join(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseEventID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if _, err := c.Service.JoinEvent(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeConflict, "already joined this event")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, helpers.MsgInternalError)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, JoinEventResponse{Message: "joined event"})
}

// Participants godoc
// @Summary List event participants
// @Description List the users who joined an event, in join order.
// @Tags memberships
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the list of participants"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *MembershipController) Participants(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseEventID(w, r)
	if !ok {
		return
	}
	participants, err := c.Service.ListParticipants(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, helpers.MsgInternalError)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}
