package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// newToken генерирует непрозрачный bearer-токен: 32 случайных байта
// (256 бит энтропии) в base64url без паддинга. Токен не кодирует ничего
// о пользователе — связь токена с личностью хранит только БД.
func newToken() (string, error) {
	const op = "service.token.newToken"

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
