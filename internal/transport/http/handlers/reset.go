package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	logctx "github.com/pribylovaa/go-auth-service/internal/pkg/log"
	"github.com/pribylovaa/go-auth-service/internal/pkg/redact"
	"github.com/pribylovaa/go-auth-service/internal/service"
)

type resetTokenRequest struct {
	Email string `json:"email"`
}

type resetTokenResponse struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

// ResetPasswordToken — POST /reset_password: выпуск токена сброса пароля.
// Неизвестный email — отказ в доступе, а не "нет такого пользователя".
func (h *Handlers) ResetPasswordToken(w http.ResponseWriter, r *http.Request) {
	var in resetTokenRequest
	if err := decodeStrict(r, &in); err != nil {
		writeForbidden(w)
		return
	}

	token, err := h.service.ResetPasswordToken(r.Context(), in.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeForbidden(w)
			return
		}

		logctx.From(r.Context()).Error("reset_token_failed",
			slog.String("email", redact.Email(in.Email)),
			slog.String("err", err.Error()),
		)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, resetTokenResponse{
		Email:      in.Email,
		ResetToken: token,
	})
}

type updatePasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

// UpdatePassword — PUT /reset_password: смена пароля по токену сброса.
// Токен одноразовый: повторная попытка с тем же токеном получает 403.
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var in updatePasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		writeForbidden(w)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), in.ResetToken, in.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) || errors.Is(err, service.ErrEmptyPassword) {
			writeForbidden(w)
			return
		}

		logctx.From(r.Context()).Error("update_password_failed",
			slog.String("email", redact.Email(in.Email)),
			slog.String("err", err.Error()),
		)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated"})
}
