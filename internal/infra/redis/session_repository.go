package redis

import (
	"context"
	"strconv"
	"time"

	"pinboard/internal/domain/entity"
	"pinboard/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// sessionRepository implements repository.SessionRepository on Redis.
// Each session is a single key mapping the opaque session id to the bound
// user id; expiry is delegated to the key TTL.
type sessionRepository struct {
	client *redis.Client
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save persists the session with the given time to live.
func (repo *sessionRepository) Save(ctx context.Context, sess *entity.Session, ttl time.Duration) error {
	value := strconv.FormatInt(sess.UserID, 10)
	if err := repo.client.Set(ctx, sessionKey(sess.ID), value, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// Find loads a session by id. An absent or expired entry reports
// repository.ErrSessionNotFound.
func (repo *sessionRepository) Find(ctx context.Context, id string) (*entity.Session, error) {
	value, err := repo.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt session entry")
	}

	return &entity.Session{ID: id, UserID: userID}, nil
}

// Delete removes a session entry. Deleting an absent session is not an
// error; the caller only cares that the session no longer exists.
func (repo *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := repo.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
