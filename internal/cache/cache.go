package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCache — минимальный контракт кэша активных сессий.
// Кэш хранит только связь "токен сессии -> ID пользователя";
// источником истины остаётся БД, промах кэша не является ошибкой.
type SessionCache interface {
	// Get возвращает ID пользователя и признак наличия записи в кэше.
	Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
	// Set сохраняет связь токена сессии с пользователем.
	// Записи живут без TTL: сессии в этом сервисе не истекают по времени.
	Set(ctx context.Context, sessionID string, userID uuid.UUID) error
	// Del удаляет запись (logout/перевыпуск сессии).
	Del(ctx context.Context, sessionID string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:sid:".
func NewRedisCache(redisURL, prefix string) (SessionCache, error) {
	if prefix == "" {
		prefix = "auth:sid:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(sessionID string) string { return c.prefix + sessionID }

func (c *redisCache) Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}

		return uuid.Nil, false, err
	}

	uid, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, err
	}

	return uid, true, nil
}

func (c *redisCache) Set(ctx context.Context, sessionID string, userID uuid.UUID) error {
	return c.rdb.Set(ctx, c.key(sessionID), userID.String(), 0).Err()
}

func (c *redisCache) Del(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, c.key(sessionID)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
