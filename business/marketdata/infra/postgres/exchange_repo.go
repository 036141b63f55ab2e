// Package postgres implements the marketdata repositories on pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmoreno/arbitrage-api/business/marketdata/app"
	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// ExchangeRepo persists exchanges.
type ExchangeRepo struct {
	db *pgxpool.Pool
}

// NewExchangeRepo creates a new ExchangeRepo.
func NewExchangeRepo(db *pgxpool.Pool) *ExchangeRepo {
	return &ExchangeRepo{db: db}
}

func (r *ExchangeRepo) Insert(ctx context.Context, e domain.Exchange) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO exchanges (id, name, short_name, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID.Hex(), e.Name, e.ShortName, e.URL, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *ExchangeRepo) Get(ctx context.Context, id ref.ID) (domain.Exchange, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, short_name, url, created_at, updated_at
		FROM exchanges WHERE id = $1`,
		id.Hex(),
	)
	return scanExchange(row)
}

func (r *ExchangeRepo) Update(ctx context.Context, e domain.Exchange) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE exchanges
		SET name = $2, short_name = $3, url = $4, updated_at = $5
		WHERE id = $1`,
		e.ID.Hex(), e.Name, e.ShortName, e.URL, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ExchangeRepo) Delete(ctx context.Context, id ref.ID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM exchanges WHERE id = $1`, id.Hex())
	return err
}

func (r *ExchangeRepo) List(ctx context.Context) ([]domain.Exchange, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, short_name, url, created_at, updated_at
		FROM exchanges ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exchanges := make([]domain.Exchange, 0)
	for rows.Next() {
		e, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}

func scanExchange(row pgx.Row) (domain.Exchange, error) {
	var (
		e  domain.Exchange
		id string
	)
	err := row.Scan(&id, &e.Name, &e.ShortName, &e.URL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Exchange{}, app.ErrNotFound
		}
		return domain.Exchange{}, err
	}
	e.ID, err = ref.Parse(id)
	if err != nil {
		return domain.Exchange{}, err
	}
	return e, nil
}
