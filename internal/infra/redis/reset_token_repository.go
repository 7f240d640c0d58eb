package redis

import (
	"context"
	"strconv"
	"time"

	"pinboard/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const resetTokenKeyPrefix = "reset-token:"

// resetTokenRepository implements repository.ResetTokenRepository on Redis.
type resetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository is the constructor for resetTokenRepository.
func NewResetTokenRepository(client *redis.Client) repository.ResetTokenRepository {
	return &resetTokenRepository{client: client}
}

func resetTokenKey(token string) string {
	return resetTokenKeyPrefix + token
}

// Save stores the token with the given time to live.
func (repo *resetTokenRepository) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	value := strconv.FormatInt(userID, 10)
	if err := repo.client.Set(ctx, resetTokenKey(token), value, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save reset token")
	}

	return nil
}

// Find resolves a token to the user it was issued for. An absent or expired
// token reports repository.ErrResetTokenNotFound.
func (repo *resetTokenRepository) Find(ctx context.Context, token string) (int64, error) {
	value, err := repo.client.Get(ctx, resetTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, repository.ErrResetTokenNotFound
		}

		return 0, errors.Wrap(err, "failed to load reset token")
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "corrupt reset token entry")
	}

	return userID, nil
}

// Delete removes a token. Deleting an absent token is not an error.
func (repo *resetTokenRepository) Delete(ctx context.Context, token string) error {
	if err := repo.client.Del(ctx, resetTokenKey(token)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete reset token")
	}

	return nil
}
