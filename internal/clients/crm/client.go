// README: CRM adapter for ASP and non-membership rate cards.
package crm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"towpricing/internal/clients/httpjson"
	"towpricing/internal/modules/pricing"
)

const (
	aspRateCardPath           = "getRateCard"
	nonMembershipRateCardPath = "get/nonMembership/rateCards"
)

type Client struct {
	http *httpjson.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{http: httpjson.New(baseURL, timeout)}
}

type aspRateCardReq struct {
	AspCode    string `json:"aspCode"`
	SubService string `json:"subService"`
	Date       string `json:"date"`
	IsMobile   bool   `json:"isMobile"`
}

type nonMembershipReq struct {
	ClientName     string `json:"clientName"`
	ServiceName    string `json:"serviceName"`
	SubServiceName string `json:"subServiceName"`
}

// rateCard is the snake_case shape the CRM returns. Prices may arrive as numbers or strings.
type rateCard struct {
	RangeLimit           decimal.NullDecimal `json:"range_limit"`
	BelowRangePrice      decimal.NullDecimal `json:"below_range_price"`
	AboveRangePrice      decimal.NullDecimal `json:"above_range_price"`
	WaitingChargePerHour decimal.NullDecimal `json:"waiting_charge_per_hour"`
}

func (r rateCard) toDomain() (pricing.RateCard, bool) {
	if !r.RangeLimit.Valid || !r.BelowRangePrice.Valid || !r.AboveRangePrice.Valid {
		return pricing.RateCard{}, false
	}
	return pricing.RateCard{
		RangeLimitKm:         r.RangeLimit.Decimal,
		BelowRangePrice:      r.BelowRangePrice.Decimal,
		AboveRangePrice:      r.AboveRangePrice.Decimal,
		WaitingChargePerHour: r.WaitingChargePerHour,
	}, true
}

func (c *Client) AspRateCard(ctx context.Context, q pricing.AspRateCardQuery) (pricing.RateCard, error) {
	var out *rateCard
	err := c.http.PostJSON(ctx, aspRateCardPath, aspRateCardReq{
		AspCode:    q.AspCode,
		SubService: q.SubService,
		Date:       q.Date,
		IsMobile:   q.IsMobile,
	}, &out)
	if err != nil {
		return pricing.RateCard{}, notFoundOr(err)
	}
	if out == nil {
		return pricing.RateCard{}, pricing.ErrNoRateCard
	}
	card, ok := out.toDomain()
	if !ok {
		return pricing.RateCard{}, pricing.ErrNoRateCard
	}
	return card, nil
}

// NonMembershipRateCard uses the first card the CRM returns.
func (c *Client) NonMembershipRateCard(ctx context.Context, q pricing.NonMembershipQuery) (pricing.RateCard, error) {
	var out []rateCard
	err := c.http.PostJSON(ctx, nonMembershipRateCardPath, nonMembershipReq{
		ClientName:     q.ClientName,
		ServiceName:    q.ServiceName,
		SubServiceName: q.SubServiceName,
	}, &out)
	if err != nil {
		return pricing.RateCard{}, notFoundOr(err)
	}
	if len(out) == 0 {
		return pricing.RateCard{}, pricing.ErrNoRateCard
	}
	card, ok := out[0].toDomain()
	if !ok {
		return pricing.RateCard{}, pricing.ErrNoRateCard
	}
	return card, nil
}

func notFoundOr(err error) error {
	var serr *httpjson.StatusError
	if errors.As(err, &serr) && serr.Code == http.StatusNotFound {
		return errors.Join(pricing.ErrNoRateCard, err)
	}
	return err
}
