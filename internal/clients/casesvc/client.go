// README: Case-management adapter for per-activity ASP charges.
package casesvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"towpricing/internal/clients/httpjson"
	"towpricing/internal/modules/pricing"
	"towpricing/internal/types"
)

const activityAspDetailPath = "activity/aspDetail"

// ErrUnsuccessful is returned when the case service answers with success=false.
var ErrUnsuccessful = errors.New("case service reported failure")

type Client struct {
	http *httpjson.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{http: httpjson.New(baseURL, timeout)}
}

type aspDetailReq struct {
	CaseDetailID int64 `json:"caseDetailId"`
	ActivityID   int64 `json:"activityId"`
	AspID        int64 `json:"aspId"`
	TypeID       int   `json:"typeId"`
}

type aspDetailResp struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Data    aspDetailData `json:"data"`
}

type aspDetailData struct {
	EstimatedAdditionalCharge    decimal.NullDecimal `json:"estimatedAdditionalCharge"`
	ActualAdditionalCharge       decimal.NullDecimal `json:"actualAdditionalCharge"`
	EstimatedClientWaitingCharge decimal.NullDecimal `json:"estimatedClientWaitingCharge"`
	ActualClientWaitingCharge    decimal.NullDecimal `json:"actualClientWaitingCharge"`
	ActualAspWaitingCharge       decimal.NullDecimal `json:"actualAspWaitingCharge"`
	DiscountAmount               decimal.NullDecimal `json:"discountAmount"`
	Activity                     *activityData       `json:"activity"`
}

type activityData struct {
	CustomerNeedToPay      bool                `json:"customerNeedToPay"`
	NonMembershipType      *string             `json:"nonMembershipType"`
	AdditionalChargeableKm decimal.NullDecimal `json:"additionalChargeableKm"`
}

// ActivityCharges fetches the charges of one activity. Absent fields are zero.
func (c *Client) ActivityCharges(ctx context.Context, q pricing.ChargeQuery) (pricing.ActivityCharges, error) {
	var out aspDetailResp
	err := c.http.PostJSON(ctx, activityAspDetailPath, aspDetailReq{
		CaseDetailID: q.CaseDetailID,
		ActivityID:   q.ActivityID,
		AspID:        q.AspID,
		TypeID:       int(q.Kind),
	}, &out)
	if err != nil {
		return pricing.ActivityCharges{}, err
	}
	if !out.Success {
		if out.Error != "" {
			return pricing.ActivityCharges{}, fmt.Errorf("%w: %s", ErrUnsuccessful, out.Error)
		}
		return pricing.ActivityCharges{}, ErrUnsuccessful
	}

	d := out.Data
	charges := pricing.ActivityCharges{
		EstimatedAdditionalCharge:    types.NullOrZero(d.EstimatedAdditionalCharge),
		ActualAdditionalCharge:       types.NullOrZero(d.ActualAdditionalCharge),
		EstimatedClientWaitingCharge: types.NullOrZero(d.EstimatedClientWaitingCharge),
		ActualClientWaitingCharge:    types.NullOrZero(d.ActualClientWaitingCharge),
		ActualAspWaitingCharge:       types.NullOrZero(d.ActualAspWaitingCharge),
		DiscountAmount:               types.NullOrZero(d.DiscountAmount),
	}
	if a := d.Activity; a != nil {
		charges.CustomerNeedToPay = a.CustomerNeedToPay
		if a.NonMembershipType != nil {
			charges.NonMembershipType = *a.NonMembershipType
		}
		charges.AdditionalChargeableKm = a.AdditionalChargeableKm
	}
	return charges, nil
}
