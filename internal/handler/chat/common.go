package chat

import (
	"errors"
	"net/http"

	"taskchat/internal/agent"
	"taskchat/internal/httputil"
	"taskchat/internal/logging"
	chatlogic "taskchat/internal/logic/chat"
	"taskchat/internal/middleware"
)

// authorizedOwner resolves the authenticated user and checks it against the
// userID path segment. Acting on another user's resources is forbidden.
func authorizedOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == "" {
		httputil.Unauthorized(w, "")
		return "", false
	}
	if pathID := httputil.PathVar(r, "userID"); pathID != ownerID {
		httputil.Forbidden(w, "cannot access another user's resources")
		return "", false
	}
	return ownerID, true
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case agent.IsValidation(err):
		httputil.ErrorWithCode(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatlogic.ErrConversationNotFound):
		httputil.NotFound(w, "conversation not found")
	case errors.Is(err, chatlogic.ErrUnauthorized):
		httputil.Unauthorized(w, "not authorized to access this resource")
	case errors.Is(err, agent.ErrNotFoundOrForbidden):
		httputil.NotFound(w, err.Error())
	case errors.Is(err, agent.ErrModelFailure):
		logging.Errorf("model request failed: %v", err)
		httputil.ErrorWithCode(w, http.StatusBadGateway, "language model request failed")
	default:
		logging.Errorf("request failed: %v", err)
		httputil.InternalError(w, "")
	}
}
