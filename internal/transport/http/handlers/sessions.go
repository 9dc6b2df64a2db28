package handlers

import (
	"log/slog"
	"net/http"

	logctx "github.com/pribylovaa/go-auth-service/internal/pkg/log"
	"github.com/pribylovaa/go-auth-service/internal/pkg/redact"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Login — POST /sessions: вход по email+пароль.
// При успехе токен сессии уезжает клиенту в куке; в теле ответа его нет.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lg := logctx.From(r.Context())

	ok, err := h.service.ValidLogin(r.Context(), in.Email, in.Password)
	if err != nil {
		lg.Error("login_check_failed",
			slog.String("email", redact.Email(in.Email)),
			slog.String("err", err.Error()),
		)
		writeInternal(w)
		return
	}

	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessionID, err := h.service.CreateSession(r.Context(), in.Email)
	if err != nil {
		lg.Error("create_session_failed",
			slog.String("email", redact.Email(in.Email)),
			slog.String("err", err.Error()),
		)
		writeInternal(w)
		return
	}

	// Пользователь исчез между проверкой пароля и выпуском сессии.
	if sessionID == "" {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.setSessionCookie(w, sessionID)
	writeJSON(w, http.StatusOK, loginResponse{Email: in.Email, Message: "logged in"})
}

// Logout — DELETE /sessions: завершение сессии из куки.
// Без валидной сессии — 403; при успехе кука гасится и клиент уводится на /.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.UserBySessionID(r.Context(), h.sessionFromCookie(r))
	if err != nil {
		logctx.From(r.Context()).Error("logout_lookup_failed", slog.String("err", err.Error()))
		writeInternal(w)
		return
	}

	if user == nil {
		writeForbidden(w)
		return
	}

	if err := h.service.DestroySession(r.Context(), user.ID); err != nil {
		logctx.From(r.Context()).Error("destroy_session_failed", slog.String("err", err.Error()))
		writeInternal(w)
		return
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
