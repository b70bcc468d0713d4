package pricing

import (
	"context"
	"fmt"
)

// RateCardResolver finds the rate card for a party. Client cards are local;
// ASP and non-membership cards come from the CRM by natural keys, which are
// looked up from ids in the local store first.
type RateCardResolver struct {
	store Repository
	crm   RateCardProvider
}

func NewRateCardResolver(store Repository, crm RateCardProvider) *RateCardResolver {
	return &RateCardResolver{store: store, crm: crm}
}

func (r *RateCardResolver) Client(ctx context.Context, clientID int64) (RateCard, error) {
	card, err := r.store.ClientRateCard(ctx, clientID)
	if err != nil {
		return RateCard{}, lookupError(err, "Delivery request price not found", "Pricing store unavailable")
	}
	return card, nil
}

func (r *RateCardResolver) Asp(ctx context.Context, aspID, subServiceID int64, date string, isMobile bool) (RateCard, error) {
	code, err := r.store.AspCode(ctx, aspID)
	if err != nil {
		return RateCard{}, lookupError(err, "ASP not found", "Pricing store unavailable")
	}
	sub, err := r.store.SubService(ctx, subServiceID)
	if err != nil {
		return RateCard{}, lookupError(err, "Sub service not found", "Pricing store unavailable")
	}

	card, err := r.crm.AspRateCard(ctx, AspRateCardQuery{
		AspCode:    code,
		SubService: sub.Name,
		Date:       date,
		IsMobile:   isMobile,
	})
	if err != nil {
		return RateCard{}, lookupError(fmt.Errorf("asp %s: %w", code, err), "ASP rate card not found", "Unable to fetch ASP rate card")
	}
	return card, nil
}

func (r *RateCardResolver) NonMembership(ctx context.Context, clientID, subServiceID int64) (RateCard, error) {
	clientName, err := r.store.ClientName(ctx, clientID)
	if err != nil {
		return RateCard{}, lookupError(err, "Client not found", "Pricing store unavailable")
	}
	sub, err := r.store.SubService(ctx, subServiceID)
	if err != nil {
		return RateCard{}, lookupError(err, "Sub service not found", "Pricing store unavailable")
	}

	card, err := r.crm.NonMembershipRateCard(ctx, NonMembershipQuery{
		ClientName:     clientName,
		ServiceName:    sub.ServiceName,
		SubServiceName: sub.Name,
	})
	if err != nil {
		return RateCard{}, lookupError(err, "Non membership rate card not found", "Unable to fetch non membership rate card")
	}
	return card, nil
}

// ForClient resolves the client-side card from the selected source.
func (r *RateCardResolver) ForClient(ctx context.Context, source RateCardSource, clientID, subServiceID int64) (RateCard, error) {
	if source == NonMembershipCard {
		return r.NonMembership(ctx, clientID, subServiceID)
	}
	return r.Client(ctx, clientID)
}
