package pricing

import "context"

// ChargeRef identifies the activity whose supplementary charges may be fetched.
type ChargeRef struct {
	CaseDetailID int64 `json:"caseDetailId"`
	ActivityID   int64 `json:"activityId"`
}

// FetchActivityCharges returns zero charges without any call when the policy skips.
func FetchActivityCharges(ctx context.Context, provider ChargeProvider, policy ChargeFetchPolicy, ref ChargeRef, aspID int64) (ActivityCharges, error) {
	kind, ok := policy.Kind()
	if !ok {
		return ActivityCharges{}, nil
	}
	charges, err := provider.ActivityCharges(ctx, ChargeQuery{
		CaseDetailID: ref.CaseDetailID,
		ActivityID:   ref.ActivityID,
		AspID:        aspID,
		Kind:         kind,
	})
	if err != nil {
		return ActivityCharges{}, lookupError(err, "Activity not found", "Unable to fetch activity charges")
	}
	return charges, nil
}
