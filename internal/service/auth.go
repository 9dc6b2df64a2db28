package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-auth-service/internal/models"
	"github.com/pribylovaa/go-auth-service/internal/storage"
)

// RegisterUser регистрирует нового пользователя.
//
// Гонка "проверили — создали" закрывается уникальным индексом по email:
// при конкурентной регистрации с тем же адресом SaveUser вернёт
// storage.ErrAlreadyExists, который маппится в тот же ErrAlreadyRegistered,
// что и быстрая проверка.
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyRegistered)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyRegistered)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ValidLogin проверяет пару email+пароль.
//
// Возвращает false как для неизвестного email, так и для неверного пароля —
// вызывающая сторона не должна уметь их различать. Ошибка возвращается
// только при сбое хранилища.
func (s *Service) ValidLogin(ctx context.Context, email, password string) (bool, error) {
	const op = "service.auth.ValidLogin"

	normEmail, err := validateEmail(email)
	if err != nil {
		return false, nil
	}

	if len(password) == 0 {
		return false, nil
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return checkPassword(user.PasswordHash, password), nil
}

// hashPassword хэширует пароль с помощью bcrypt.
// Два вызова для одного пароля дают разные хэши (случайная соль).
func (s *Service) hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
// Для некорректного хэша возвращает false, а не ошибку.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email, обрезает пробелы снаружи
// и приводит адрес к нижнему регистру — политика регистра фиксирована
// на уровне сервиса и согласована с CITEXT-колонкой в БД.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}
