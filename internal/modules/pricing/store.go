// README: Pricing store backed by PostgreSQL (client rate cards, tax rates, master-data names).
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Numeric columns are read as text so decimal values never pass through float64.
func (s *Store) ClientRateCard(ctx context.Context, clientID int64) (RateCard, error) {
	row := s.db.QueryRow(ctx, `
		SELECT range_limit::text, below_range_price::text, above_range_price::text,
		       waiting_charge_per_hour::text
		FROM client_rate_cards
		WHERE client_id = $1`, clientID,
	)

	var rangeLimit, below, above string
	var waiting *string
	if err := row.Scan(&rangeLimit, &below, &above, &waiting); err != nil {
		return RateCard{}, notFoundOr(err)
	}

	var card RateCard
	var err error
	if card.RangeLimitKm, err = decimal.NewFromString(rangeLimit); err != nil {
		return RateCard{}, fmt.Errorf("client %d range_limit: %w", clientID, err)
	}
	if card.BelowRangePrice, err = decimal.NewFromString(below); err != nil {
		return RateCard{}, fmt.Errorf("client %d below_range_price: %w", clientID, err)
	}
	if card.AboveRangePrice, err = decimal.NewFromString(above); err != nil {
		return RateCard{}, fmt.Errorf("client %d above_range_price: %w", clientID, err)
	}
	if waiting != nil {
		w, err := decimal.NewFromString(*waiting)
		if err != nil {
			return RateCard{}, fmt.Errorf("client %d waiting_charge_per_hour: %w", clientID, err)
		}
		card.WaitingChargePerHour = decimal.NewNullDecimal(w)
	}
	return card, nil
}

func (s *Store) ClientName(ctx context.Context, clientID int64) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, `SELECT name FROM clients WHERE id = $1`, clientID).Scan(&name)
	if err != nil {
		return "", notFoundOr(err)
	}
	return name, nil
}

func (s *Store) AspCode(ctx context.Context, aspID int64) (string, error) {
	var code string
	err := s.db.QueryRow(ctx, `SELECT code FROM asps WHERE id = $1`, aspID).Scan(&code)
	if err != nil {
		return "", notFoundOr(err)
	}
	return code, nil
}

func (s *Store) SubService(ctx context.Context, subServiceID int64) (SubService, error) {
	row := s.db.QueryRow(ctx, `
		SELECT ss.id, ss.name, sv.name
		FROM sub_services ss
		JOIN services sv ON sv.id = ss.service_id
		WHERE ss.id = $1`, subServiceID,
	)
	var sub SubService
	if err := row.Scan(&sub.ID, &sub.Name, &sub.ServiceName); err != nil {
		return SubService{}, notFoundOr(err)
	}
	return sub, nil
}

func (s *Store) TaxRate(ctx context.Context, name string) (TaxRate, error) {
	var pct string
	err := s.db.QueryRow(ctx, `SELECT percentage::text FROM tax_rates WHERE name = $1`, name).Scan(&pct)
	if err != nil {
		return TaxRate{}, notFoundOr(err)
	}
	rate, err := decimal.NewFromString(pct)
	if err != nil {
		return TaxRate{}, fmt.Errorf("tax rate %s: %w", name, err)
	}
	return TaxRate{Name: name, PercentageRate: rate}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecordNotFound
	}
	return err
}
