// service содержит бизнес-логику auth-сервиса:
// регистрацию пользователей, проверку учётных данных, жизненный цикл
// сессий и токенов сброса пароля поверх интерфейсов из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются и далее маппятся
//     транспортом на HTTP-статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/go-auth-service/internal/cache"
	"github.com/pribylovaa/go-auth-service/internal/config"
	"github.com/pribylovaa/go-auth-service/internal/storage"
)

var (
	// ErrAlreadyRegistered — e-mail уже занят другим пользователем.
	// Транспорт: HTTP 400 "email already registered".
	ErrAlreadyRegistered = errors.New("email already registered")

	// ErrUserNotFound — запрошен сброс пароля для неизвестного e-mail.
	// Транспорт: HTTP 403.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidResetToken — смена пароля по неизвестному/использованному
	// токену сброса. Транспорт: HTTP 403.
	ErrInvalidResetToken = errors.New("invalid reset token")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyPassword — пароль пустой.
	// Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	scache  cache.SessionCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetSessionCache устанавливает кэш сессий (опционально).
func (s *Service) SetSessionCache(c cache.SessionCache) {
	s.scache = c
}
