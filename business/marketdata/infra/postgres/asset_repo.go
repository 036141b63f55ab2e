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

// AssetRepo persists assets.
type AssetRepo struct {
	db *pgxpool.Pool
}

// NewAssetRepo creates a new AssetRepo.
func NewAssetRepo(db *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Insert(ctx context.Context, a domain.Asset) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO assets (id, exchange_id, name, short_name, created_at, updated_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID.Hex(), a.ExchangeID.Hex(), a.Name, a.ShortName, a.CreatedAt, a.UpdatedAt, a.Status,
	)
	return err
}

func (r *AssetRepo) Get(ctx context.Context, id ref.ID) (domain.Asset, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, exchange_id, name, short_name, created_at, updated_at, status
		FROM assets WHERE id = $1`,
		id.Hex(),
	)
	return scanAsset(row)
}

func (r *AssetRepo) Update(ctx context.Context, a domain.Asset) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE assets
		SET exchange_id = $2, name = $3, short_name = $4, updated_at = $5, status = $6
		WHERE id = $1`,
		a.ID.Hex(), a.ExchangeID.Hex(), a.Name, a.ShortName, a.UpdatedAt, a.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *AssetRepo) Delete(ctx context.Context, id ref.ID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id.Hex())
	return err
}

func (r *AssetRepo) List(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, exchange_id, name, short_name, created_at, updated_at, status
		FROM assets ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func scanAsset(row pgx.Row) (domain.Asset, error) {
	var (
		a              domain.Asset
		id, exchangeID string
	)
	err := row.Scan(&id, &exchangeID, &a.Name, &a.ShortName, &a.CreatedAt, &a.UpdatedAt, &a.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Asset{}, app.ErrNotFound
		}
		return domain.Asset{}, err
	}
	if a.ID, err = ref.Parse(id); err != nil {
		return domain.Asset{}, err
	}
	if a.ExchangeID, err = ref.Parse(exchangeID); err != nil {
		return domain.Asset{}, err
	}
	return a, nil
}
