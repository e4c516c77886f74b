package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/closest/internal/models"
)

const (
	// Key prefixes for Redis
	roundKeyPrefix       = "round:"
	roundStatusKeyPrefix = "round_status:"
	roundsIndexKey       = "rounds"
	roundsByStatusPrefix = "rounds_by_status:"
	roundCounterKey      = "counter:round"
)

// Key returns the Redis key holding the JSON encoded round
func Key(roundID int64) string {
	return roundKeyPrefix + strconv.FormatInt(roundID, 10)
}

// StatusKey returns the Redis key holding only the round status. The answer
// store reads it inside its conditional insert script.
func StatusKey(roundID int64) string {
	return roundStatusKeyPrefix + strconv.FormatInt(roundID, 10)
}

func statusIndexKey(status models.RoundStatus) string {
	return roundsByStatusPrefix + string(status)
}

// Config holds configuration for the Redis round repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed round repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateRound assigns the next round ID and stores the round with its indexes
func (r *redisRepository) CreateRound(ctx context.Context, input *CreateRoundInput) (*models.Round, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid round status %q", input.Status)
	}

	id, err := r.client.Incr(ctx, roundCounterKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate round ID: %w", err)
	}

	round := &models.Round{
		ID:        id,
		CreatedAt: input.CreatedAt,
		Status:    input.Status,
	}

	roundJSON, err := json.Marshal(round)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal round: %w", err)
	}

	member := redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, Key(id), roundJSON, 0)
		pipe.Set(ctx, StatusKey(id), string(round.Status), 0)
		pipe.ZAdd(ctx, roundsIndexKey, member)
		pipe.ZAdd(ctx, statusIndexKey(round.Status), member)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save round: %w", err)
	}

	return round, nil
}

// GetRound retrieves a round by ID from Redis
func (r *redisRepository) GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	roundJSON, err := r.client.Get(ctx, Key(input.RoundID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	var round models.Round
	if err := json.Unmarshal(roundJSON, &round); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round: %w", err)
	}

	return &round, nil
}

// UpdateRoundStatus changes the status under an optimistic WATCH on the round
// key. Setting the current status again leaves the stored round untouched.
func (r *redisRepository) UpdateRoundStatus(ctx context.Context, input *UpdateRoundStatusInput) (*models.Round, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid round status %q", input.Status)
	}

	key := Key(input.RoundID)
	var updated models.Round

	txf := func(tx *redis.Tx) error {
		roundJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrRoundNotFound
			}
			return fmt.Errorf("failed to get round: %w", err)
		}

		if err := json.Unmarshal(roundJSON, &updated); err != nil {
			return fmt.Errorf("failed to unmarshal round: %w", err)
		}

		previous := updated.Status
		if previous == input.Status {
			return nil
		}
		updated.Status = input.Status

		updatedJSON, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("failed to marshal round: %w", err)
		}

		member := strconv.FormatInt(updated.ID, 10)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updatedJSON, 0)
			pipe.Set(ctx, StatusKey(updated.ID), string(updated.Status), 0)
			pipe.ZRem(ctx, statusIndexKey(previous), member)
			pipe.ZAdd(ctx, statusIndexKey(updated.Status), redis.Z{Score: float64(updated.ID), Member: member})
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrConcurrentUpdate
		}
		if errors.Is(err, ErrRoundNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update round status: %w", err)
	}

	return &updated, nil
}

// DeleteRound removes the round, its status key and index entries
func (r *redisRepository) DeleteRound(ctx context.Context, input *DeleteRoundInput) (*DeleteRoundOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	member := strconv.FormatInt(input.RoundID, 10)
	var delCmd *redis.IntCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delCmd = pipe.Del(ctx, Key(input.RoundID))
		pipe.Del(ctx, StatusKey(input.RoundID))
		pipe.ZRem(ctx, roundsIndexKey, member)
		pipe.ZRem(ctx, statusIndexKey(models.RoundStatusOpen), member)
		pipe.ZRem(ctx, statusIndexKey(models.RoundStatusClosed), member)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete round: %w", err)
	}

	return &DeleteRoundOutput{Deleted: delCmd.Val() > 0}, nil
}

// ListRounds retrieves a page of rounds ordered by ID descending
func (r *redisRepository) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Limit <= 0 || input.Offset < 0 {
		return nil, fmt.Errorf("invalid page limit=%d offset=%d", input.Limit, input.Offset)
	}

	indexKey := roundsIndexKey
	if input.Status != nil {
		indexKey = statusIndexKey(*input.Status)
	}

	start := int64(input.Offset)
	stop := start + int64(input.Limit) - 1
	ids, err := r.client.ZRevRange(ctx, indexKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list round IDs: %w", err)
	}

	if len(ids) == 0 {
		return &ListRoundsOutput{Rounds: []*models.Round{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roundKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}

	rounds := make([]*models.Round, 0, len(values))
	for i, value := range values {
		// Round was deleted between reading the index and fetching it
		if value == nil {
			continue
		}

		roundJSON, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type for round %s", ids[i])
		}

		var round models.Round
		if err := json.Unmarshal([]byte(roundJSON), &round); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %s: %w", ids[i], err)
		}
		rounds = append(rounds, &round)
	}

	return &ListRoundsOutput{Rounds: rounds}, nil
}
