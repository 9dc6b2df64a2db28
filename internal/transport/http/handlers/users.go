package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	logctx "github.com/pribylovaa/go-auth-service/internal/pkg/log"
	"github.com/pribylovaa/go-auth-service/internal/pkg/redact"
	"github.com/pribylovaa/go-auth-service/internal/service"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// RegisterUser — POST /users: регистрация нового пользователя.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.service.RegisterUser(r.Context(), in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRegistered):
			writeMessage(w, http.StatusBadRequest, "email already registered")
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrEmptyPassword):
			writeMessage(w, http.StatusBadRequest, "invalid request")
		default:
			logctx.From(r.Context()).Error("register_failed",
				slog.String("email", redact.Email(in.Email)),
				slog.String("err", err.Error()),
			)
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Email:   user.Email,
		Message: "user created",
	})
}

type profileResponse struct {
	Email string `json:"email"`
}

// Profile — GET /profile: личность владельца сессии.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.UserBySessionID(r.Context(), h.sessionFromCookie(r))
	if err != nil {
		logctx.From(r.Context()).Error("profile_lookup_failed", slog.String("err", err.Error()))
		writeInternal(w)
		return
	}

	if user == nil {
		writeForbidden(w)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{Email: user.Email})
}
