// README: Pricing service computes client and ASP trip costs.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"towpricing/internal/types"
)

type Deps struct {
	Store     Repository
	Distance  DistanceProvider
	RateCards RateCardProvider
	Charges   ChargeProvider
	TaxName   string
	Logger    *zap.Logger
}

type Service struct {
	store    Repository
	distance DistanceProvider
	charges  ChargeProvider
	cards    *RateCardResolver
	taxName  string
	log      *zap.Logger
}

func NewService(deps Deps) *Service {
	taxName := deps.TaxName
	if taxName == "" {
		taxName = DefaultTaxName
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    deps.Store,
		distance: deps.Distance,
		charges:  deps.Charges,
		cards:    NewRateCardResolver(deps.Store, deps.RateCards),
		taxName:  taxName,
		log:      log,
	}
}

// Result is the uniform response of every pricing operation.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	kind    ErrorKind
}

// Kind reports the error category of a failed result, empty on success.
func (r Result[T]) Kind() ErrorKind { return r.kind }

func run[T any](ctx context.Context, s *Service, op string, fn func(context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("pricing operation panicked", zap.String("op", op), zap.Any("panic", p))
			res = Result[T]{Error: "internal error", kind: KindInternal}
		}
	}()

	data, err := fn(ctx)
	if err == nil {
		return Result[T]{Success: true, Data: &data}
	}

	var perr *Error
	if !errors.As(err, &perr) {
		perr = &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}
	s.log.Warn("pricing operation failed",
		zap.String("op", op),
		zap.String("kind", string(perr.Kind)),
		zap.Error(err),
	)
	return Result[T]{Error: perr.Message, kind: perr.Kind}
}

// ClientCostEstimate prices a trip for the client from ASP, pickup and optional drop waypoints.
func (s *Service) ClientCostEstimate(ctx context.Context, req ClientCostRequest) Result[PricingResult] {
	return run(ctx, s, "client_cost_estimate", func(ctx context.Context) (PricingResult, error) {
		if err := req.validate(); err != nil {
			return PricingResult{}, err
		}
		res, _, err := s.clientCost(ctx, req)
		return res, err
	})
}

// AspCostEstimate prices a trip for the ASP using its CRM rate card.
func (s *Service) AspCostEstimate(ctx context.Context, req AspCostRequest) Result[PricingResult] {
	return run(ctx, s, "asp_cost_estimate", func(ctx context.Context) (PricingResult, error) {
		if err := req.validate(); err != nil {
			return PricingResult{}, err
		}
		return s.aspCost(ctx, req, nil)
	})
}

// TravelledKmCost prices the client's actual bill from the distance actually travelled.
func (s *Service) TravelledKmCost(ctx context.Context, req TravelledKmRequest) Result[PricingResult] {
	return run(ctx, s, "travelled_km_cost", func(ctx context.Context) (PricingResult, error) {
		if err := req.validate(); err != nil {
			return PricingResult{}, err
		}

		var (
			card    RateCard
			tax     TaxRate
			charges ActivityCharges
		)
		g, gctx := errgroup.WithContext(ctx)
		goSafe(g, func() (err error) {
			card, err = s.cards.ForClient(gctx, sourceFor(req.NonMembership), req.ClientID, req.SubServiceID)
			return err
		})
		goSafe(g, func() (err error) {
			tax, err = s.taxRate(gctx)
			return err
		})
		goSafe(g, func() (err error) {
			charges, err = FetchActivityCharges(gctx, s.charges, ChargeFetchActual, req.Activity, req.AspID)
			return err
		})
		if err := g.Wait(); err != nil {
			return PricingResult{}, err
		}

		return assemble(costInputs{
			totalKm:    req.TotalKm.Decimal,
			card:       card,
			excess:     charges.Excess(),
			additional: charges.ActualAdditionalCharge,
			waiting:    charges.ActualClientWaitingCharge,
			discount:   charges.DiscountAmount,
			taxRate:    tax.PercentageRate,
		}), nil
	})
}

// RouteDeviationCost reprices both parties on the estimated distance plus a deviation.
func (s *Service) RouteDeviationCost(ctx context.Context, req RouteDeviationRequest) Result[RouteDeviationCost] {
	return run(ctx, s, "route_deviation_cost", func(ctx context.Context) (RouteDeviationCost, error) {
		if err := req.validate(); err != nil {
			return RouteDeviationCost{}, err
		}
		totalKm := req.EstimatedTotalKm.Decimal.Add(req.RouteDeviationKm.Decimal)

		var (
			clientCard, aspCard RateCard
			tax                 TaxRate
			charges             ActivityCharges
		)
		g, gctx := errgroup.WithContext(ctx)
		goSafe(g, func() (err error) {
			clientCard, err = s.cards.ForClient(gctx, sourceFor(req.NonMembership), req.ClientID, req.SubServiceID)
			return err
		})
		goSafe(g, func() (err error) {
			aspCard, err = s.cards.Asp(gctx, req.AspID, req.SubServiceID, req.Date, req.IsMobile)
			return err
		})
		goSafe(g, func() (err error) {
			tax, err = s.taxRate(gctx)
			return err
		})
		goSafe(g, func() (err error) {
			charges, err = FetchActivityCharges(gctx, s.charges, req.ChargePolicy, req.Activity, req.AspID)
			return err
		})
		if err := g.Wait(); err != nil {
			return RouteDeviationCost{}, err
		}

		kind, _ := req.ChargePolicy.Kind()
		return RouteDeviationCost{
			TotalKm: totalKm,
			Client: assemble(costInputs{
				totalKm:    totalKm,
				card:       clientCard,
				excess:     charges.Excess(),
				additional: charges.AdditionalCharge(kind),
				taxRate:    tax.PercentageRate,
			}),
			Asp: assemble(costInputs{
				totalKm:    totalKm,
				card:       aspCard,
				additional: charges.AdditionalCharge(kind),
				waiting:    aspWaiting(kind, charges),
				taxRate:    tax.PercentageRate,
			}),
		}, nil
	})
}

// ActivityCosts prices the client and ASP side of every activity. The ASP side
// reuses the distance resolved for the client so both are priced on one trip.
func (s *Service) ActivityCosts(ctx context.Context, req ActivityCostsRequest) Result[[]ActivityCost] {
	return run(ctx, s, "activity_costs", func(ctx context.Context) ([]ActivityCost, error) {
		if err := req.validate(); err != nil {
			return nil, err
		}

		costs := make([]ActivityCost, len(req.Activities))
		g, gctx := errgroup.WithContext(ctx)
		for i, a := range req.Activities {
			goSafe(g, func() error {
				client, charges, err := s.clientCost(gctx, req.clientRequest(a))
				if err != nil {
					return err
				}
				asp, err := s.aspCost(gctx, req.aspRequest(a, client.TotalKm), &charges)
				if err != nil {
					return err
				}
				asp.TotalDuration = client.TotalDuration
				asp.TotalDurationMinutes = client.TotalDurationMinutes
				costs[i] = ActivityCost{ActivityID: a.ActivityID, Client: client, Asp: asp}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return costs, nil
	})
}

// clientCost also returns the activity charges it fetched so a caller pricing the
// ASP side of the same activity can reuse them.
func (s *Service) clientCost(ctx context.Context, req ClientCostRequest) (PricingResult, ActivityCharges, error) {
	var (
		legs    LegSet
		card    RateCard
		tax     TaxRate
		charges ActivityCharges
	)
	g, gctx := errgroup.WithContext(ctx)
	goSafe(g, func() (err error) {
		legs, err = ResolveLegs(gctx, s.distance, req.Points)
		return err
	})
	goSafe(g, func() (err error) {
		card, err = s.cards.ForClient(gctx, sourceFor(req.NonMembership), req.ClientID, req.SubServiceID)
		return err
	})
	goSafe(g, func() (err error) {
		tax, err = s.taxRate(gctx)
		return err
	})
	goSafe(g, func() (err error) {
		charges, err = FetchActivityCharges(gctx, s.charges, req.ChargePolicy, req.Activity, req.AspID)
		return err
	})
	if err := g.Wait(); err != nil {
		return PricingResult{}, ActivityCharges{}, err
	}

	excess := charges.Excess()
	if req.Excess != nil {
		excess = *req.Excess
	}
	kind, _ := req.ChargePolicy.Kind()

	res := assemble(costInputs{
		totalKm:    legs.TotalKm,
		card:       card,
		excess:     excess,
		additional: charges.AdditionalCharge(kind),
		taxRate:    tax.PercentageRate,
	})
	withLegs(&res, legs)
	return res, charges, nil
}

// aspCost fetches activity charges unless prefetched is given.
func (s *Service) aspCost(ctx context.Context, req AspCostRequest, prefetched *ActivityCharges) (PricingResult, error) {
	var (
		legs    LegSet
		card    RateCard
		tax     TaxRate
		charges ActivityCharges
	)
	g, gctx := errgroup.WithContext(ctx)
	if req.Points != nil {
		goSafe(g, func() (err error) {
			legs, err = ResolveLegs(gctx, s.distance, *req.Points)
			return err
		})
	}
	goSafe(g, func() (err error) {
		card, err = s.cards.Asp(gctx, req.AspID, req.SubServiceID, req.Date, req.IsMobile)
		return err
	})
	goSafe(g, func() (err error) {
		tax, err = s.taxRate(gctx)
		return err
	})
	if prefetched != nil {
		charges = *prefetched
	} else {
		goSafe(g, func() (err error) {
			charges, err = FetchActivityCharges(gctx, s.charges, req.ChargePolicy, req.Activity, req.AspID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return PricingResult{}, err
	}

	totalKm := req.TotalKm.Decimal
	if req.Points != nil {
		totalKm = legs.TotalKm
	}
	kind, _ := req.ChargePolicy.Kind()

	res := assemble(costInputs{
		totalKm:    totalKm,
		card:       card,
		additional: charges.AdditionalCharge(kind),
		waiting:    aspWaiting(kind, charges),
		taxRate:    tax.PercentageRate,
	})
	if req.Points != nil {
		withLegs(&res, legs)
	}
	return res, nil
}

// goSafe turns a panic inside a fan-out goroutine into an internal error so the
// enclosing operation still returns a Result.
func goSafe(g *errgroup.Group, fn func() error) {
	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = &Error{Kind: KindInternal, Message: "internal error", Err: fmt.Errorf("panic: %v", p)}
			}
		}()
		return fn()
	})
}

func (s *Service) taxRate(ctx context.Context) (TaxRate, error) {
	tax, err := s.store.TaxRate(ctx, s.taxName)
	if err != nil {
		return TaxRate{}, lookupError(err, "Tax rate not found", "Pricing store unavailable")
	}
	return tax, nil
}

func aspWaiting(kind ChargeKind, charges ActivityCharges) decimal.Decimal {
	if kind == ChargeActual {
		return charges.ActualAspWaitingCharge
	}
	return decimal.Zero
}

func withLegs(res *PricingResult, legs LegSet) {
	res.Legs = append([]types.Leg(nil), legs.Legs...)
	res.TotalDuration = legs.Duration
	res.TotalDurationMinutes = legs.TotalMinutes
}
