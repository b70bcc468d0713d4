package pricing

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"towpricing/internal/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func km(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

func wp(lat, lng string) types.Waypoint { return types.Waypoint{Latitude: lat, Longitude: lng} }

type fakeStore struct {
	mu          sync.Mutex
	clientCards map[int64]RateCard
	clientNames map[int64]string
	aspCodes    map[int64]string
	subServices map[int64]SubService
	taxRates    map[string]TaxRate
	err         error
	calls       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clientCards: map[int64]RateCard{
			1: {RangeLimitKm: d("10"), BelowRangePrice: d("500"), AboveRangePrice: d("20")},
		},
		clientNames: map[int64]string{1: "Acme Motors"},
		aspCodes:    map[int64]string{7: "ASP007"},
		subServices: map[int64]SubService{3: {ID: 3, Name: "Flatbed", ServiceName: "Towing"}},
		taxRates:    map[string]TaxRate{DefaultTaxName: {Name: DefaultTaxName, PercentageRate: d("18")}},
	}
}

func (f *fakeStore) hit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) ClientRateCard(_ context.Context, clientID int64) (RateCard, error) {
	if err := f.hit(); err != nil {
		return RateCard{}, err
	}
	card, ok := f.clientCards[clientID]
	if !ok {
		return RateCard{}, ErrRecordNotFound
	}
	return card, nil
}

func (f *fakeStore) ClientName(_ context.Context, clientID int64) (string, error) {
	if err := f.hit(); err != nil {
		return "", err
	}
	name, ok := f.clientNames[clientID]
	if !ok {
		return "", ErrRecordNotFound
	}
	return name, nil
}

func (f *fakeStore) AspCode(_ context.Context, aspID int64) (string, error) {
	if err := f.hit(); err != nil {
		return "", err
	}
	code, ok := f.aspCodes[aspID]
	if !ok {
		return "", ErrRecordNotFound
	}
	return code, nil
}

func (f *fakeStore) SubService(_ context.Context, id int64) (SubService, error) {
	if err := f.hit(); err != nil {
		return SubService{}, err
	}
	sub, ok := f.subServices[id]
	if !ok {
		return SubService{}, ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeStore) TaxRate(_ context.Context, name string) (TaxRate, error) {
	if err := f.hit(); err != nil {
		return TaxRate{}, err
	}
	rate, ok := f.taxRates[name]
	if !ok {
		return TaxRate{}, ErrRecordNotFound
	}
	return rate, nil
}

// fakeDistance answers legs by "from->to" key; unknown pairs fail.
type fakeDistance struct {
	mu    sync.Mutex
	legs  map[string]types.Leg
	fail  map[string]error
	calls int
}

func newFakeDistance() *fakeDistance {
	return &fakeDistance{legs: map[string]types.Leg{}, fail: map[string]error{}}
}

func (f *fakeDistance) set(from, to types.Waypoint, km string, seconds float64) {
	f.legs[from.String()+"->"+to.String()] = types.Leg{DistanceKm: d(km), DurationMinutes: seconds / 60}
}

func (f *fakeDistance) Leg(_ context.Context, from, to types.Waypoint) (types.Leg, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := from.String() + "->" + to.String()
	if err, ok := f.fail[key]; ok {
		return types.Leg{}, err
	}
	leg, ok := f.legs[key]
	if !ok {
		return types.Leg{}, errors.New("no leg for " + key)
	}
	return leg, nil
}

func (f *fakeDistance) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCRM struct {
	mu            sync.Mutex
	aspCards      map[string]RateCard
	nonMembership map[string]RateCard
	err           error
	aspQueries    []AspRateCardQuery
	nmQueries     []NonMembershipQuery
}

func newFakeCRM() *fakeCRM {
	return &fakeCRM{
		aspCards: map[string]RateCard{
			"ASP007/Flatbed": {RangeLimitKm: d("20"), BelowRangePrice: d("400"), AboveRangePrice: d("15")},
		},
		nonMembership: map[string]RateCard{
			"Acme Motors/Towing/Flatbed": {RangeLimitKm: d("5"), BelowRangePrice: d("900"), AboveRangePrice: d("30")},
		},
	}
}

func (f *fakeCRM) AspRateCard(_ context.Context, q AspRateCardQuery) (RateCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aspQueries = append(f.aspQueries, q)
	if f.err != nil {
		return RateCard{}, f.err
	}
	card, ok := f.aspCards[q.AspCode+"/"+q.SubService]
	if !ok {
		return RateCard{}, ErrNoRateCard
	}
	return card, nil
}

func (f *fakeCRM) NonMembershipRateCard(_ context.Context, q NonMembershipQuery) (RateCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nmQueries = append(f.nmQueries, q)
	if f.err != nil {
		return RateCard{}, f.err
	}
	card, ok := f.nonMembership[q.ClientName+"/"+q.ServiceName+"/"+q.SubServiceName]
	if !ok {
		return RateCard{}, ErrNoRateCard
	}
	return card, nil
}

type fakeCharges struct {
	mu      sync.Mutex
	charges ActivityCharges
	err     error
	queries []ChargeQuery
}

func (f *fakeCharges) ActivityCharges(_ context.Context, q ChargeQuery) (ActivityCharges, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return ActivityCharges{}, f.err
	}
	return f.charges, nil
}

func (f *fakeCharges) Queries() []ChargeQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ChargeQuery(nil), f.queries...)
}
