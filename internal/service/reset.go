package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-auth-service/internal/storage"
)

// ResetPasswordToken выпускает токен сброса пароля для пользователя
// с указанным email.
//
// Повторный запрос перезаписывает прежний незакрытый токен — действителен
// всегда только последний. Неизвестный email — доменная ошибка ErrUserNotFound:
// транспорт обязан превратить её в отказ в доступе.
func (s *Service) ResetPasswordToken(ctx context.Context, email string) (string, error) {
	const op = "service.reset.ResetPasswordToken"

	normEmail, err := validateEmail(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	resetToken, err := newToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	changes := storage.UserChanges{ResetToken: &resetToken}
	if err := s.storage.UpdateUser(ctx, user.ID, changes); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return resetToken, nil
}

// UpdatePassword меняет пароль по токену сброса.
//
// Новый хэш пароля и очистка reset-токена применяются одним обновлением:
// токен одноразовый и гаснет ровно в момент успешной смены пароля.
// Активная сессия пользователя при этом не трогается.
func (s *Service) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	const op = "service.reset.UpdatePassword"

	if resetToken == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
	}

	if len(newPassword) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	user, err := s.storage.UserByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := s.hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	changes := storage.UserChanges{
		PasswordHash:    &hashedPassword,
		ClearResetToken: true,
	}
	if err := s.storage.UpdateUser(ctx, user.ID, changes); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
