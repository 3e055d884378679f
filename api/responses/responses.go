package responses

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

// ErrorBody is the wire shape of every non-2xx response.
type ErrorBody struct {
	Message string `json:"message"`
	Reason  string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON writes payload with the given status. Encoding failures are
// logged; headers are already flushed at that point so the status stands.
func WriteJSON(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && logg != nil {
		logg.Error(ctx, "encoding response payload", err)
	}
}

// WriteSuccess writes payload with a 200.
func WriteSuccess(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, payload any) {
	WriteJSON(ctx, logg, w, http.StatusOK, payload)
}

// WriteCreated writes payload with a 201.
func WriteCreated(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, payload any) {
	WriteJSON(ctx, logg, w, http.StatusCreated, payload)
}

// WriteError renders err using the taxonomy metadata for its code. Untagged
// errors surface as a generic 500 so internals never leak to callers.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := errors.As(err)
	if typed == nil {
		typed = errors.Wrap(errors.CodeInternal, err, "")
	}

	meta := errors.MetadataFor(typed.Code())

	body := ErrorBody{
		Message: typed.Message(),
		Reason:  typed.Reason(),
	}
	if body.Message == "" {
		body.Message = meta.PublicMessage
	}
	if body.Reason == "" {
		body.Reason = meta.PublicReason
	}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request failed", err)
		} else {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "request rejected")
		}
	}

	WriteJSON(ctx, logg, w, meta.HTTPStatus, body)
}
