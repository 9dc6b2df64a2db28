package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
//
// Описание:
//   - Email хранится в нормализованном (нижнем) регистре и уникален;
//   - PasswordHash — bcrypt-хэш пароля, исходный пароль нигде не хранится;
//   - SessionID — непрозрачный токен активной сессии; nil, если сессии нет.
//     У пользователя не может быть больше одной активной сессии;
//   - ResetToken — одноразовый токен сброса пароля; nil, если сброс не запрошен.
//     SessionID и ResetToken независимы друг от друга.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	SessionID    *string
	ResetToken   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
