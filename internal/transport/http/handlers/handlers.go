// handlers содержит HTTP-эндпоинты auth-сервиса.
// Здесь выполняется только маппинг данных и ошибок доменного слоя (service) в HTTP.
// Вся бизнес-логика находится в пакете service.
//
// Маппинг ошибок:
//   - ErrInvalidEmail/ErrEmptyPassword -> 400;
//   - ErrAlreadyRegistered -> 400 "email already registered";
//   - невалидные учётные данные -> 401;
//   - отсутствующая/чужая сессия, неизвестный email при сбросе,
//     невалидный reset-токен -> 403;
//   - прочее -> 500 c единым безопасным сообщением (детали остаются в логах).
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-auth-service/internal/config"
	"github.com/pribylovaa/go-auth-service/internal/service"
)

// Handlers агрегирует зависимости эндпоинтов.
type Handlers struct {
	service *service.Service
	auth    config.AuthConfig
}

func New(s *service.Service, auth config.AuthConfig) *Handlers {
	return &Handlers{service: s, auth: auth}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeInternal(w http.ResponseWriter) {
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

func writeForbidden(w http.ResponseWriter) {
	writeMessage(w, http.StatusForbidden, "forbidden")
}

// sessionFromCookie достаёт токен сессии из куки; пустая строка — куки нет.
func (h *Handlers) sessionFromCookie(r *http.Request) string {
	c, err := r.Cookie(h.auth.SessionCookie)
	if err != nil {
		return ""
	}

	return c.Value
}

// setSessionCookie выставляет сессионную куку.
// Сессии не истекают по времени, поэтому MaxAge не задаётся.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie гасит сессионную куку на клиенте.
func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
