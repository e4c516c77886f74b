package round

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KirkDiggler/closest/internal/models"
)

// PostgresConfig holds configuration for the Postgres round repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface using Postgres
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed round repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Pool == nil {
		return nil, errors.New("postgres pool cannot be nil")
	}

	return &postgresRepository{pool: cfg.Pool}, nil
}

const roundColumns = `round_id, created_at, status`

func (r *postgresRepository) CreateRound(ctx context.Context, input *CreateRoundInput) (*models.Round, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid round status %q", input.Status)
	}

	rows, err := r.pool.Query(ctx,
		`INSERT INTO guess_round (created_at, status) VALUES ($1, $2) RETURNING `+roundColumns,
		input.CreatedAt, string(input.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert round: %w", err)
	}

	round, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[models.Round])
	if err != nil {
		return nil, fmt.Errorf("failed to insert round: %w", err)
	}

	return round, nil
}

func (r *postgresRepository) GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+roundColumns+` FROM guess_round WHERE round_id = $1`,
		input.RoundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return collectRound(rows)
}

// UpdateRoundStatus is a single conditional UPDATE; Postgres row locking
// serializes it against in-flight answer inserts.
func (r *postgresRepository) UpdateRoundStatus(ctx context.Context, input *UpdateRoundStatusInput) (*models.Round, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid round status %q", input.Status)
	}

	rows, err := r.pool.Query(ctx,
		`UPDATE guess_round SET status = $1 WHERE round_id = $2 RETURNING `+roundColumns,
		string(input.Status), input.RoundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update round status: %w", err)
	}

	return collectRound(rows)
}

// DeleteRound removes the round; answers go with it through ON DELETE CASCADE
func (r *postgresRepository) DeleteRound(ctx context.Context, input *DeleteRoundInput) (*DeleteRoundOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM guess_round WHERE round_id = $1`, input.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete round: %w", err)
	}

	return &DeleteRoundOutput{Deleted: tag.RowsAffected() > 0}, nil
}

func (r *postgresRepository) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Limit <= 0 || input.Offset < 0 {
		return nil, fmt.Errorf("invalid page limit=%d offset=%d", input.Limit, input.Offset)
	}

	var status *string
	if input.Status != nil {
		s := string(*input.Status)
		status = &s
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+roundColumns+` FROM guess_round
		 WHERE ($1::text IS NULL OR status = $1)
		 ORDER BY round_id DESC
		 LIMIT $2 OFFSET $3`,
		status, input.Limit, input.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[models.Round])
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	return &ListRoundsOutput{Rounds: rounds}, nil
}

func collectRound(rows pgx.Rows) (*models.Round, error) {
	round, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[models.Round])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to read round: %w", err)
	}
	return round, nil
}
