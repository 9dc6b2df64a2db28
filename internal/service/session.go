package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-auth-service/internal/models"
	"github.com/pribylovaa/go-auth-service/internal/pkg/log"
	"github.com/pribylovaa/go-auth-service/internal/storage"
)

// CreateSession открывает сессию для пользователя с указанным email.
//
// Возвращает новый токен сессии; прежняя сессия (если была) перезаписывается —
// у пользователя всегда не больше одной активной сессии. Для неизвестного
// email возвращается пустой токен без ошибки: различать "нет пользователя"
// и "нет сессии" вызывающая сторона не должна.
func (s *Service) CreateSession(ctx context.Context, email string) (string, error) {
	const op = "service.session.CreateSession"

	normEmail, err := validateEmail(email)
	if err != nil {
		return "", nil
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	sessionID, err := newToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	changes := storage.UserChanges{SessionID: &sessionID}
	if err := s.storage.UpdateUser(ctx, user.ID, changes); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Пользователь исчез между чтением и записью.
			return "", nil
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.cacheDropSession(ctx, user.SessionID)
	s.cacheStoreSession(ctx, sessionID, user.ID)

	return sessionID, nil
}

// UserBySessionID возвращает пользователя по токену сессии.
//
// Пустой токен и неизвестный токен дают (nil, nil) — это ожидаемые,
// а не исключительные исходы. Хранилище при пустом токене не опрашивается.
func (s *Service) UserBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	const op = "service.session.UserBySessionID"

	if sessionID == "" {
		return nil, nil
	}

	if user, ok := s.userFromCache(ctx, sessionID); ok {
		return user, nil
	}

	user, err := s.storage.UserBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheStoreSession(ctx, sessionID, user.ID)

	return user, nil
}

// DestroySession закрывает сессию пользователя по его ID.
//
// Операция идемпотентна: отсутствие пользователя или уже закрытая сессия
// не считаются ошибкой.
func (s *Service) DestroySession(ctx context.Context, userID uuid.UUID) error {
	const op = "service.session.DestroySession"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	changes := storage.UserChanges{ClearSessionID: true}
	if err := s.storage.UpdateUser(ctx, userID, changes); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.cacheDropSession(ctx, user.SessionID)

	return nil
}

// userFromCache — чтение через кэш сессий: по попаданию добирает запись
// из БД по ID и сверяет, что сессия всё ещё активна. Любой сбой кэша —
// повод сходить в хранилище, а не ошибка.
func (s *Service) userFromCache(ctx context.Context, sessionID string) (*models.User, bool) {
	if s.scache == nil {
		return nil, false
	}

	lg := log.From(ctx)

	userID, ok, err := s.scache.Get(ctx, sessionID)
	if err != nil {
		lg.Warn("session_cache_get_failed", slog.String("err", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil || user.SessionID == nil || *user.SessionID != sessionID {
		// Кэш отстал от БД — чистим и идём обычным путём.
		s.cacheDropSession(ctx, &sessionID)
		return nil, false
	}

	return user, true
}

func (s *Service) cacheStoreSession(ctx context.Context, sessionID string, userID uuid.UUID) {
	if s.scache == nil {
		return
	}

	if err := s.scache.Set(ctx, sessionID, userID); err != nil {
		log.From(ctx).Warn("session_cache_set_failed", slog.String("err", err.Error()))
	}
}

func (s *Service) cacheDropSession(ctx context.Context, sessionID *string) {
	if s.scache == nil || sessionID == nil || *sessionID == "" {
		return
	}

	if err := s.scache.Del(ctx, *sessionID); err != nil {
		log.From(ctx).Warn("session_cache_del_failed", slog.String("err", err.Error()))
	}
}
