package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-auth-service/internal/models"
	"github.com/pribylovaa/go-auth-service/internal/storage"
)

// SaveUser создает нового пользователя в БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(id, email, password_hash, session_id, reset_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.SessionID,
		user.ResetToken,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	return s.userBy(ctx, op, "email = $1", email)
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	return s.userBy(ctx, op, "id = $1", id)
}

// UserBySessionID находит пользователя по токену активной сессии.
func (s *Storage) UserBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	const op = "storage.postgres.UserBySessionID"

	return s.userBy(ctx, op, "session_id = $1", sessionID)
}

// UserByResetToken находит пользователя по токену сброса пароля.
func (s *Storage) UserByResetToken(ctx context.Context, resetToken string) (*models.User, error) {
	const op = "storage.postgres.UserByResetToken"

	return s.userBy(ctx, op, "reset_token = $1", resetToken)
}

// userBy — общий SELECT по одному критерию.
// Критерии используют уникальные индексы, поэтому больше одной строки
// запрос вернуть не может; при нуле строк — storage.ErrNotFound.
func (s *Storage) userBy(ctx context.Context, op, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, session_id, reset_token, created_at, updated_at
		FROM users
		WHERE ` + where

	var user models.User
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.SessionID,
		&user.ResetToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// UpdateUser атомарно применяет частичное обновление к пользователю.
//
// Все изменения уходят одним UPDATE-стейтментом, поэтому конкурентные
// обновления одной записи сериализуются строчной блокировкой PostgreSQL —
// частично применённых изменений не бывает.
func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, changes storage.UserChanges) error {
	const op = "storage.postgres.UpdateUser"

	if changes.Empty() {
		return fmt.Errorf("%s: %w", op, storage.ErrEmptyChangeset)
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if changes.PasswordHash != nil {
		args = append(args, *changes.PasswordHash)
		set = append(set, fmt.Sprintf("password_hash = $%d", len(args)))
	}

	switch {
	case changes.SessionID != nil:
		args = append(args, *changes.SessionID)
		set = append(set, fmt.Sprintf("session_id = $%d", len(args)))
	case changes.ClearSessionID:
		set = append(set, "session_id = NULL")
	}

	switch {
	case changes.ResetToken != nil:
		args = append(args, *changes.ResetToken)
		set = append(set, fmt.Sprintf("reset_token = $%d", len(args)))
	case changes.ClearResetToken:
		set = append(set, "reset_token = NULL")
	}

	set = append(set, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))

	ct, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
