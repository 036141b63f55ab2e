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

// populatedSelect joins a pair with its exchange and both assets. Inner joins
// make dangling references drop out of multi-row reads and turn into
// ErrNoRows on single-row reads.
const populatedSelect = `
	SELECT mp.id, mp.created_at, mp.updated_at, mp.status,
	       e.id, e.name, e.short_name, e.url, e.created_at, e.updated_at,
	       b.id, b.exchange_id, b.name, b.short_name, b.created_at, b.updated_at, b.status,
	       q.id, q.exchange_id, q.name, q.short_name, q.created_at, q.updated_at, q.status
	FROM market_pairs mp
	JOIN exchanges e ON e.id = mp.exchange_id
	JOIN assets b ON b.id = mp.base_asset_id
	JOIN assets q ON q.id = mp.quote_asset_id`

// PairRepo persists market pairs and serves their populated projections.
type PairRepo struct {
	db *pgxpool.Pool
}

// NewPairRepo creates a new PairRepo.
func NewPairRepo(db *pgxpool.Pool) *PairRepo {
	return &PairRepo{db: db}
}

func (r *PairRepo) Insert(ctx context.Context, p domain.MarketPair) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO market_pairs (id, exchange_id, base_asset_id, quote_asset_id, created_at, updated_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID.Hex(), p.ExchangeID.Hex(), p.BaseAssetID.Hex(), p.QuoteAssetID.Hex(),
		p.CreatedAt, p.UpdatedAt, p.Status,
	)
	return err
}

func (r *PairRepo) Get(ctx context.Context, id ref.ID) (domain.MarketPair, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, exchange_id, base_asset_id, quote_asset_id, created_at, updated_at, status
		FROM market_pairs WHERE id = $1`,
		id.Hex(),
	)

	var (
		p                          domain.MarketPair
		pairID, exID, baseID, qtID string
	)
	err := row.Scan(&pairID, &exID, &baseID, &qtID, &p.CreatedAt, &p.UpdatedAt, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MarketPair{}, app.ErrNotFound
		}
		return domain.MarketPair{}, err
	}
	if p.ID, err = ref.Parse(pairID); err != nil {
		return domain.MarketPair{}, err
	}
	if p.ExchangeID, err = ref.Parse(exID); err != nil {
		return domain.MarketPair{}, err
	}
	if p.BaseAssetID, err = ref.Parse(baseID); err != nil {
		return domain.MarketPair{}, err
	}
	if p.QuoteAssetID, err = ref.Parse(qtID); err != nil {
		return domain.MarketPair{}, err
	}
	return p, nil
}

func (r *PairRepo) Update(ctx context.Context, p domain.MarketPair) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE market_pairs
		SET exchange_id = $2, base_asset_id = $3, quote_asset_id = $4, updated_at = $5, status = $6
		WHERE id = $1`,
		p.ID.Hex(), p.ExchangeID.Hex(), p.BaseAssetID.Hex(), p.QuoteAssetID.Hex(),
		p.UpdatedAt, p.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *PairRepo) Delete(ctx context.Context, id ref.ID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM market_pairs WHERE id = $1`, id.Hex())
	return err
}

func (r *PairRepo) GetPopulated(ctx context.Context, id ref.ID) (domain.PopulatedMarketPair, error) {
	row := r.db.QueryRow(ctx, populatedSelect+` WHERE mp.id = $1`, id.Hex())
	return scanPopulated(row)
}

func (r *PairRepo) ListPopulated(ctx context.Context, f domain.PairFilter, limit, offset int) ([]domain.PopulatedMarketPair, error) {
	rows, err := r.db.Query(ctx, populatedSelect+`
		WHERE ($1 = '' OR mp.exchange_id = $1)
		  AND ($2 = '' OR b.short_name ILIKE '%' || $2 || '%' OR q.short_name ILIKE '%' || $2 || '%')
		ORDER BY mp.created_at, mp.id
		LIMIT $3 OFFSET $4`,
		filterExchange(f), f.Search, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPopulated(rows)
}

func (r *PairRepo) CountPopulated(ctx context.Context, f domain.PairFilter) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM market_pairs mp
		JOIN exchanges e ON e.id = mp.exchange_id
		JOIN assets b ON b.id = mp.base_asset_id
		JOIN assets q ON q.id = mp.quote_asset_id
		WHERE ($1 = '' OR mp.exchange_id = $1)
		  AND ($2 = '' OR b.short_name ILIKE '%' || $2 || '%' OR q.short_name ILIKE '%' || $2 || '%')`,
		filterExchange(f), f.Search,
	).Scan(&total)
	return total, err
}

func (r *PairRepo) ListByExchange(ctx context.Context, exchangeID ref.ID) ([]domain.PopulatedMarketPair, error) {
	rows, err := r.db.Query(ctx, populatedSelect+`
		WHERE mp.exchange_id = $1
		ORDER BY mp.created_at, mp.id`,
		exchangeID.Hex(),
	)
	if err != nil {
		return nil, err
	}
	return collectPopulated(rows)
}

func (r *PairRepo) ListPopulatedByIDs(ctx context.Context, ids []ref.ID) ([]domain.PopulatedMarketPair, error) {
	hexes := make([]string, len(ids))
	for i, id := range ids {
		hexes[i] = id.Hex()
	}
	rows, err := r.db.Query(ctx, populatedSelect+` WHERE mp.id = ANY($1)`, hexes)
	if err != nil {
		return nil, err
	}
	return collectPopulated(rows)
}

func (r *PairRepo) FindMatching(ctx context.Context, exchangeID ref.ID, baseSymbol string, quoteSymbols []string) (*domain.PopulatedMarketPair, error) {
	row := r.db.QueryRow(ctx, populatedSelect+`
		WHERE mp.exchange_id = $1
		  AND b.short_name = $2
		  AND q.short_name = ANY($3)
		ORDER BY mp.created_at, mp.id
		LIMIT 1`,
		exchangeID.Hex(), baseSymbol, quoteSymbols,
	)
	p, err := scanPopulated(row)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PairRepo) FindConversionBySymbols(ctx context.Context, symbols1, symbols2 []string) ([]domain.PopulatedMarketPair, error) {
	rows, err := r.db.Query(ctx, populatedSelect+`
		WHERE (b.short_name = ANY($1) AND q.short_name = ANY($2))
		   OR (b.short_name = ANY($2) AND q.short_name = ANY($1))
		ORDER BY mp.created_at, mp.id`,
		symbols1, symbols2,
	)
	if err != nil {
		return nil, err
	}
	return collectPopulated(rows)
}

func (r *PairRepo) FindBridging(ctx context.Context, asset1ID, asset2ID ref.ID) ([]domain.PopulatedMarketPair, error) {
	rows, err := r.db.Query(ctx, populatedSelect+`
		WHERE (mp.base_asset_id = $1 AND mp.quote_asset_id = $2)
		   OR (mp.base_asset_id = $2 AND mp.quote_asset_id = $1)
		ORDER BY mp.created_at, mp.id`,
		asset1ID.Hex(), asset2ID.Hex(),
	)
	if err != nil {
		return nil, err
	}
	return collectPopulated(rows)
}

func filterExchange(f domain.PairFilter) string {
	if f.ExchangeID.IsZero() {
		return ""
	}
	return f.ExchangeID.Hex()
}

func collectPopulated(rows pgx.Rows) ([]domain.PopulatedMarketPair, error) {
	defer rows.Close()

	pairs := make([]domain.PopulatedMarketPair, 0)
	for rows.Next() {
		p, err := scanPopulated(rows)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func scanPopulated(row pgx.Row) (domain.PopulatedMarketPair, error) {
	var (
		p                              domain.PopulatedMarketPair
		pairID, exID                   string
		baseID, baseExID, qtID, qtExID string
	)
	err := row.Scan(
		&pairID, &p.CreatedAt, &p.UpdatedAt, &p.Status,
		&exID, &p.Exchange.Name, &p.Exchange.ShortName, &p.Exchange.URL,
		&p.Exchange.CreatedAt, &p.Exchange.UpdatedAt,
		&baseID, &baseExID, &p.BaseAsset.Name, &p.BaseAsset.ShortName,
		&p.BaseAsset.CreatedAt, &p.BaseAsset.UpdatedAt, &p.BaseAsset.Status,
		&qtID, &qtExID, &p.QuoteAsset.Name, &p.QuoteAsset.ShortName,
		&p.QuoteAsset.CreatedAt, &p.QuoteAsset.UpdatedAt, &p.QuoteAsset.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PopulatedMarketPair{}, app.ErrNotFound
		}
		return domain.PopulatedMarketPair{}, err
	}

	if p.ID, err = ref.Parse(pairID); err != nil {
		return domain.PopulatedMarketPair{}, err
	}
	if p.Exchange.ID, err = ref.Parse(exID); err != nil {
		return domain.PopulatedMarketPair{}, err
	}
	if p.BaseAsset.ID, err = ref.Parse(baseID); err != nil {
		return domain.PopulatedMarketPair{}, err
	}
	if p.BaseAsset.ExchangeID, err = ref.Parse(baseExID); err != nil {
		return domain.PopulatedMarketPair{}, err
	}
	if p.QuoteAsset.ID, err = ref.Parse(qtID); err != nil {
		return domain.PopulatedMarketPair{}, err
	}
	if p.QuoteAsset.ExchangeID, err = ref.Parse(qtExID); err != nil {
		return domain.PopulatedMarketPair{}, err
	}
	return p, nil
}
