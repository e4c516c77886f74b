package answer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KirkDiggler/closest/internal/models"
)

// PostgresConfig holds configuration for the Postgres answer repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface using Postgres
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed answer repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Pool == nil {
		return nil, errors.New("postgres pool cannot be nil")
	}

	return &postgresRepository{pool: cfg.Pool}, nil
}

const answerColumns = `answer_id, round_id, user_name, value, submitted_at`

func (r *postgresRepository) InsertAnswer(ctx context.Context, input *InsertAnswerInput) (*models.Answer, error) {
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

// InsertAnswers holds a share lock on the round row for the whole
// transaction. A concurrent status UPDATE waits for it, so an answer can
// never commit into a round that was already closed.
func (r *postgresRepository) InsertAnswers(ctx context.Context, input *InsertAnswersInput) (*InsertAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Answers) == 0 {
		return nil, errors.New("no answers to insert")
	}

	answers := make([]*models.Answer, 0, len(input.Answers))

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var status models.RoundStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM guess_round WHERE round_id = $1 FOR SHARE`,
			input.RoundID,
		).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRoundNotFound
			}
			return fmt.Errorf("failed to lock round: %w", err)
		}

		if !status.IsOpen() {
			return ErrRoundClosed
		}

		for _, na := range input.Answers {
			rows, err := tx.Query(ctx,
				`INSERT INTO answer (round_id, user_name, value, submitted_at)
				 VALUES ($1, $2, $3, $4)
				 RETURNING `+answerColumns,
				input.RoundID, na.UserName, na.Value, na.SubmittedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert answer: %w", err)
			}

			a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[models.Answer])
			if err != nil {
				return fmt.Errorf("failed to insert answer: %w", err)
			}
			answers = append(answers, a)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &InsertAnswersOutput{Answers: answers}, nil
}

func (r *postgresRepository) GetAnswer(ctx context.Context, input *GetAnswerInput) (*models.Answer, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+answerColumns+` FROM answer WHERE answer_id = $1`,
		input.AnswerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	return collectAnswer(rows)
}

func (r *postgresRepository) GetAnswersByIDs(ctx context.Context, input *GetAnswersByIDsInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if len(input.AnswerIDs) == 0 {
		return &ListAnswersOutput{Answers: []*models.Answer{}}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+answerColumns+` FROM answer WHERE answer_id = ANY($1) ORDER BY answer_id`,
		input.AnswerIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	return collectAnswers(rows)
}

func (r *postgresRepository) ListAnswersByRound(ctx context.Context, input *ListAnswersByRoundInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+answerColumns+` FROM answer WHERE round_id = $1 ORDER BY answer_id`,
		input.RoundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	return collectAnswers(rows)
}

func (r *postgresRepository) ListAllAnswers(ctx context.Context, input *ListAllAnswersInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rows, err := r.pool.Query(ctx, `SELECT `+answerColumns+` FROM answer ORDER BY answer_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	return collectAnswers(rows)
}

func (r *postgresRepository) ListAnswers(ctx context.Context, input *ListAnswersInput) (*ListAnswersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Limit <= 0 || input.Offset < 0 {
		return nil, fmt.Errorf("invalid page limit=%d offset=%d", input.Limit, input.Offset)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+answerColumns+` FROM answer
		 WHERE ($1::bigint IS NULL OR round_id = $1)
		 ORDER BY answer_id DESC
		 LIMIT $2 OFFSET $3`,
		input.RoundID, input.Limit, input.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	return collectAnswers(rows)
}

func (r *postgresRepository) CountAnswersByRound(ctx context.Context, input *CountAnswersByRoundInput) (*CountAnswersByRoundOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM answer WHERE round_id = $1`,
		input.RoundID,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}

	return &CountAnswersByRoundOutput{Count: count}, nil
}

func (r *postgresRepository) UpdateAnswer(ctx context.Context, input *UpdateAnswerInput) (*models.Answer, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rows, err := r.pool.Query(ctx,
		`UPDATE answer
		 SET user_name = COALESCE($2, user_name), value = COALESCE($3, value)
		 WHERE answer_id = $1
		 RETURNING `+answerColumns,
		input.AnswerID, input.UserName, input.Value,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}

	return collectAnswer(rows)
}

func (r *postgresRepository) DeleteAnswer(ctx context.Context, input *DeleteAnswerInput) (*DeleteAnswerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM answer WHERE answer_id = $1`, input.AnswerID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete answer: %w", err)
	}

	return &DeleteAnswerOutput{Deleted: tag.RowsAffected() > 0}, nil
}

// DeleteAnswersByRound is normally a no-op here since the foreign key
// cascades, but it keeps the Redis and Postgres stores interchangeable.
func (r *postgresRepository) DeleteAnswersByRound(ctx context.Context, input *DeleteAnswersByRoundInput) (*DeleteAnswersByRoundOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM answer WHERE round_id = $1`, input.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete answers: %w", err)
	}

	return &DeleteAnswersByRoundOutput{Deleted: int(tag.RowsAffected())}, nil
}

func collectAnswer(rows pgx.Rows) (*models.Answer, error) {
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[models.Answer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to read answer: %w", err)
	}
	return a, nil
}

func collectAnswers(rows pgx.Rows) (*ListAnswersOutput, error) {
	answers, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[models.Answer])
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return &ListAnswersOutput{Answers: answers}, nil
}
