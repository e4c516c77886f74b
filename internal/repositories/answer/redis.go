package answer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/closest/internal/models"
	"github.com/KirkDiggler/closest/internal/repositories/round"
)

const (
	// Key prefixes for Redis
	answerKeyPrefix       = "answer:"
	roundAnswersKeyPrefix = "round_answers:"
	answersIndexKey       = "answers"
	answerCounterKey      = "counter:answer"
)

func answerKey(answerID int64) string {
	return answerKeyPrefix + strconv.FormatInt(answerID, 10)
}

func roundAnswersKey(roundID int64) string {
	return roundAnswersKeyPrefix + strconv.FormatInt(roundID, 10)
}

// Insert result codes returned by insertScript
const (
	insertOK          = 1
	insertNoRound     = 0
	insertRoundClosed = -1
)

// insertScript writes a batch of answers only if the round status key says
// open. KEYS: status, round index, global index, then one key per answer.
// ARGV: id and JSON body for each answer, in the same order as the keys.
var insertScript = redis.NewScript(`
local status = redis.call('GET', KEYS[1])
if not status then
	return 0
end
if status ~= 'open' then
	return -1
end
for i = 4, #KEYS do
	local id = ARGV[(i - 4) * 2 + 1]
	redis.call('SET', KEYS[i], ARGV[(i - 4) * 2 + 2])
	redis.call('ZADD', KEYS[2], id, id)
	redis.call('ZADD', KEYS[3], id, id)
end
return 1
`)

// Config holds configuration for the Redis answer repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed answer repository. It shares the
// keyspace of the Redis round repository and reads its status keys.
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

func (r *redisRepository) InsertAnswer(ctx context.Context, input *InsertAnswerInput) (*models.Answer, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out, err := r.InsertAnswers(ctx, &InsertAnswersInput{
		RoundID: input.RoundID,
		Answers: []*NewAnswer{{
			UserName:    input.UserName,
			Value:       input.Value,
			SubmittedAt: input.SubmittedAt,
		}},
	})
	if err != nil {
		return nil, err
	}

	return out.Answers[0], nil
}

// InsertAnswers reserves IDs up front then runs the conditional insert
// script. IDs reserved for a rejected batch are skipped, never reused.
func (r *redisRepository) InsertAnswers(ctx context.Context, input *InsertAnswersInput) (*InsertAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Answers) == 0 {
		return nil, errors.New("no answers to insert")
	}

	last, err := r.client.IncrBy(ctx, answerCounterKey, int64(len(input.Answers))).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate answer IDs: %w", err)
	}
	first := last - int64(len(input.Answers)) + 1

	keys := make([]string, 0, 3+len(input.Answers))
	keys = append(keys, round.StatusKey(input.RoundID), roundAnswersKey(input.RoundID), answersIndexKey)
	args := make([]any, 0, 2*len(input.Answers))
	answers := make([]*models.Answer, len(input.Answers))

	for i, na := range input.Answers {
		a := &models.Answer{
			ID:          first + int64(i),
			RoundID:     input.RoundID,
			UserName:    na.UserName,
			Value:       na.Value,
			SubmittedAt: na.SubmittedAt,
		}

		answerJSON, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal answer: %w", err)
		}

		keys = append(keys, answerKey(a.ID))
		args = append(args, a.ID, string(answerJSON))
		answers[i] = a
	}

	code, err := insertScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to insert answers: %w", err)
	}

	switch code {
	case insertOK:
		return &InsertAnswersOutput{Answers: answers}, nil
	case insertNoRound:
		return nil, ErrRoundNotFound
	case insertRoundClosed:
		return nil, ErrRoundClosed
	default:
		return nil, fmt.Errorf("unexpected insert result %d", code)
	}
}

// GetAnswer retrieves an answer by ID from Redis
func (r *redisRepository) GetAnswer(ctx context.Context, input *GetAnswerInput) (*models.Answer, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	answerJSON, err := r.client.Get(ctx, answerKey(input.AnswerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	var a models.Answer
	if err := json.Unmarshal(answerJSON, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}

	return &a, nil
}

func (r *redisRepository) GetAnswersByIDs(ctx context.Context, input *GetAnswersByIDsInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	sorted := slices.Clone(input.AnswerIDs)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	ids := make([]string, len(sorted))
	for i, id := range sorted {
		ids[i] = strconv.FormatInt(id, 10)
	}

	return r.loadAnswers(ctx, ids)
}

func (r *redisRepository) ListAnswersByRound(ctx context.Context, input *ListAnswersByRoundInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	ids, err := r.client.ZRange(ctx, roundAnswersKey(input.RoundID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list answer IDs: %w", err)
	}

	return r.loadAnswers(ctx, ids)
}

func (r *redisRepository) ListAllAnswers(ctx context.Context, input *ListAllAnswersInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	ids, err := r.client.ZRange(ctx, answersIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list answer IDs: %w", err)
	}

	return r.loadAnswers(ctx, ids)
}

func (r *redisRepository) ListAnswers(ctx context.Context, input *ListAnswersInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Limit <= 0 || input.Offset < 0 {
		return nil, fmt.Errorf("invalid page limit=%d offset=%d", input.Limit, input.Offset)
	}

	indexKey := answersIndexKey
	if input.RoundID != nil {
		indexKey = roundAnswersKey(*input.RoundID)
	}

	start := int64(input.Offset)
	stop := start + int64(input.Limit) - 1
	ids, err := r.client.ZRevRange(ctx, indexKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list answer IDs: %w", err)
	}

	return r.loadAnswers(ctx, ids)
}

func (r *redisRepository) CountAnswersByRound(ctx context.Context, input *CountAnswersByRoundInput) (*CountAnswersByRoundOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	count, err := r.client.ZCard(ctx, roundAnswersKey(input.RoundID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}

	return &CountAnswersByRoundOutput{Count: int(count)}, nil
}

// UpdateAnswer rewrites the answer under a WATCH on its key. The indexes are
// keyed by ID only, so they are left alone.
func (r *redisRepository) UpdateAnswer(ctx context.Context, input *UpdateAnswerInput) (*models.Answer, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	key := answerKey(input.AnswerID)
	var updated models.Answer

	txf := func(tx *redis.Tx) error {
		answerJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrAnswerNotFound
			}
			return fmt.Errorf("failed to get answer: %w", err)
		}

		if err := json.Unmarshal(answerJSON, &updated); err != nil {
			return fmt.Errorf("failed to unmarshal answer: %w", err)
		}

		if input.UserName != nil {
			updated.UserName = *input.UserName
		}
		if input.Value != nil {
			updated.Value = *input.Value
		}

		updatedJSON, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updatedJSON, 0)
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrConcurrentUpdate
		}
		if errors.Is(err, ErrAnswerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}

	return &updated, nil
}

func (r *redisRepository) DeleteAnswer(ctx context.Context, input *DeleteAnswerInput) (*DeleteAnswerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	existing, err := r.GetAnswer(ctx, &GetAnswerInput{AnswerID: input.AnswerID})
	if err != nil {
		if errors.Is(err, ErrAnswerNotFound) {
			return &DeleteAnswerOutput{Deleted: false}, nil
		}
		return nil, err
	}

	member := strconv.FormatInt(existing.ID, 10)
	var delCmd *redis.IntCmd

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delCmd = pipe.Del(ctx, answerKey(existing.ID))
		pipe.ZRem(ctx, roundAnswersKey(existing.RoundID), member)
		pipe.ZRem(ctx, answersIndexKey, member)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete answer: %w", err)
	}

	return &DeleteAnswerOutput{Deleted: delCmd.Val() > 0}, nil
}

// DeleteAnswersByRound removes a round's answers. The round itself must be
// deleted first so no insert can land between the read and the delete.
func (r *redisRepository) DeleteAnswersByRound(ctx context.Context, input *DeleteAnswersByRoundInput) (*DeleteAnswersByRoundOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	indexKey := roundAnswersKey(input.RoundID)
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list answer IDs: %w", err)
	}

	if len(ids) == 0 {
		return &DeleteAnswersByRoundOutput{Deleted: 0}, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = answerKeyPrefix + id
		members[i] = id
	}

	var delCmd *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delCmd = pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, answersIndexKey, members...)
		pipe.Del(ctx, indexKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete answers: %w", err)
	}

	return &DeleteAnswersByRoundOutput{Deleted: int(delCmd.Val())}, nil
}

// loadAnswers fetches answers for ids in the given order, skipping any that
// vanished after the index was read
func (r *redisRepository) loadAnswers(ctx context.Context, ids []string) (*ListAnswersOutput, error) {
	if len(ids) == 0 {
		return &ListAnswersOutput{Answers: []*models.Answer{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = answerKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	answers := make([]*models.Answer, 0, len(values))
	for i, value := range values {
		if value == nil {
			continue
		}

		answerJSON, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type for answer %s", ids[i])
		}

		var a models.Answer
		if err := json.Unmarshal([]byte(answerJSON), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer %s: %w", ids[i], err)
		}
		answers = append(answers, &a)
	}

	return &ListAnswersOutput{Answers: answers}, nil
}
