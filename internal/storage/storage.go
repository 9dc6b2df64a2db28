package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-auth-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь по id/email/токену).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email или id).
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyChangeset — в UpdateUser не передано ни одного изменения.
	ErrEmptyChangeset = errors.New("empty changeset")
)

// UserChanges — частичное обновление пользователя.
//
// Разрешённый набор полей закрыт: password_hash, session_id, reset_token
// (id и email неизменяемы после создания). Поле со значением nil не трогается.
// Для nullable-колонок установка задаётся указателем на новое значение,
// очистка — отдельным флагом Clear*.
type UserChanges struct {
	PasswordHash *string

	SessionID      *string
	ClearSessionID bool

	ResetToken      *string
	ClearResetToken bool
}

// Empty сообщает, что changeset не содержит ни одного изменения.
func (c UserChanges) Empty() bool {
	return c.PasswordHash == nil &&
		c.SessionID == nil && !c.ClearSessionID &&
		c.ResetToken == nil && !c.ClearResetToken
}

// UserStorage выполняет операции над пользователями.
//
// Контракт конкурентности: реализация обязана быть безопасной для
// одновременных вызовов; SaveUser при гонке двух регистраций с одним email
// допускает успех не более одного вызова (второй получает ErrAlreadyExists),
// UpdateUser применяет все изменения одним атомарным действием.
type UserStorage interface {
	// SaveUser создает нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (ожидается нижний регистр).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UserBySessionID находит пользователя по токену активной сессии.
	UserBySessionID(ctx context.Context, sessionID string) (*models.User, error)
	// UserByResetToken находит пользователя по токену сброса пароля.
	UserByResetToken(ctx context.Context, resetToken string) (*models.User, error)
	// UpdateUser атомарно применяет частичное обновление к пользователю.
	UpdateUser(ctx context.Context, id uuid.UUID, changes UserChanges) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	Close()
}
