// Package postgres implements the strategy repository on pgx. Details are
// stored as a bare JSONB payload with arbitrage_type as the discriminator
// column.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmoreno/arbitrage-api/business/strategy/app"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// StrategyRepo persists arbitrage strategies.
type StrategyRepo struct {
	db *pgxpool.Pool
}

// NewStrategyRepo creates a new StrategyRepo.
func NewStrategyRepo(db *pgxpool.Pool) *StrategyRepo {
	return &StrategyRepo{db: db}
}

func (r *StrategyRepo) Insert(ctx context.Context, s domain.Strategy) error {
	details, err := json.Marshal(s.Details)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO arbitrage_strategies (id, arbitrage_type, details, created_at, updated_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID.Hex(), string(s.ArbitrageType), details, s.CreatedAt, s.UpdatedAt, s.Status,
	)
	return err
}

func (r *StrategyRepo) Get(ctx context.Context, id ref.ID) (domain.Strategy, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, arbitrage_type, details, created_at, updated_at, status
		FROM arbitrage_strategies WHERE id = $1`,
		id.Hex(),
	)
	return scanStrategy(row)
}

func (r *StrategyRepo) Update(ctx context.Context, s domain.Strategy) error {
	details, err := json.Marshal(s.Details)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE arbitrage_strategies
		SET arbitrage_type = $2, details = $3, updated_at = $4, status = $5
		WHERE id = $1`,
		s.ID.Hex(), string(s.ArbitrageType), details, s.UpdatedAt, s.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *StrategyRepo) Delete(ctx context.Context, id ref.ID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM arbitrage_strategies WHERE id = $1`, id.Hex())
	return err
}

func (r *StrategyRepo) List(ctx context.Context, typeFilter *domain.ArbitrageType, limit, offset int) ([]domain.Strategy, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, arbitrage_type, details, created_at, updated_at, status
		FROM arbitrage_strategies
		WHERE ($1 = '' OR arbitrage_type = $1)
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`,
		filterType(typeFilter), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	strategies := make([]domain.Strategy, 0)
	for rows.Next() {
		s, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, rows.Err()
}

func (r *StrategyRepo) Count(ctx context.Context, typeFilter *domain.ArbitrageType) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM arbitrage_strategies
		WHERE ($1 = '' OR arbitrage_type = $1)`,
		filterType(typeFilter),
	).Scan(&total)
	return total, err
}

func filterType(typeFilter *domain.ArbitrageType) string {
	if typeFilter == nil {
		return ""
	}
	return string(*typeFilter)
}

func scanStrategy(row pgx.Row) (domain.Strategy, error) {
	var (
		s       domain.Strategy
		id, typ string
		details []byte
	)
	err := row.Scan(&id, &typ, &details, &s.CreatedAt, &s.UpdatedAt, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Strategy{}, app.ErrNotFound
		}
		return domain.Strategy{}, err
	}

	if s.ID, err = ref.Parse(id); err != nil {
		return domain.Strategy{}, err
	}
	s.ArbitrageType = domain.ArbitrageType(typ)
	if s.Details, err = domain.DecodeDetails(s.ArbitrageType, details); err != nil {
		return domain.Strategy{}, err
	}
	return s, nil
}
