package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type ClientCostRequest struct {
	ClientID      int64             `json:"clientId"`
	SubServiceID  int64             `json:"subServiceId"`
	AspID         int64             `json:"aspId"`
	NonMembership bool              `json:"nonMembership"`
	Points        TripPoints        `json:"points"`
	Activity      ChargeRef         `json:"activity"`
	ChargePolicy  ChargeFetchPolicy `json:"chargePolicy"`
	Excess        *ExcessTowing     `json:"excessTowing,omitempty"`
}

func (r ClientCostRequest) validate() error {
	if r.ClientID <= 0 {
		return validationError("Client id is required")
	}
	if r.NonMembership && r.SubServiceID <= 0 {
		return validationError("Sub service id is required")
	}
	if err := validatePoints(r.Points); err != nil {
		return err
	}
	if err := validateExcess(r.Excess); err != nil {
		return err
	}
	return validateChargeRef(r.ChargePolicy, r.Activity, r.AspID)
}

type AspCostRequest struct {
	AspID        int64               `json:"aspId"`
	SubServiceID int64               `json:"subServiceId"`
	Date         string              `json:"date"`
	IsMobile     bool                `json:"isMobile"`
	Points       *TripPoints         `json:"points,omitempty"`
	TotalKm      decimal.NullDecimal `json:"totalKm"`
	Activity     ChargeRef           `json:"activity"`
	ChargePolicy ChargeFetchPolicy   `json:"chargePolicy"`
}

func (r AspCostRequest) validate() error {
	if err := validateAspContext(r.AspID, r.SubServiceID, r.Date); err != nil {
		return err
	}
	switch {
	case r.Points == nil && !r.TotalKm.Valid:
		return validationError("Either points or totalKm is required")
	case r.Points != nil && r.TotalKm.Valid:
		return validationError("Only one of points or totalKm may be given")
	case r.Points != nil:
		if err := validatePoints(*r.Points); err != nil {
			return err
		}
	default:
		if err := validateKm(r.TotalKm.Decimal); err != nil {
			return err
		}
	}
	return validateChargeRef(r.ChargePolicy, r.Activity, r.AspID)
}

type TravelledKmRequest struct {
	ClientID      int64               `json:"clientId"`
	SubServiceID  int64               `json:"subServiceId"`
	AspID         int64               `json:"aspId"`
	NonMembership bool                `json:"nonMembership"`
	TotalKm       decimal.NullDecimal `json:"totalKm"`
	Activity      ChargeRef           `json:"activity"`
}

func (r TravelledKmRequest) validate() error {
	if r.ClientID <= 0 {
		return validationError("Client id is required")
	}
	if r.NonMembership && r.SubServiceID <= 0 {
		return validationError("Sub service id is required")
	}
	if err := validateRequiredKm(r.TotalKm); err != nil {
		return err
	}
	return validateChargeRef(ChargeFetchActual, r.Activity, r.AspID)
}

type RouteDeviationRequest struct {
	ClientID         int64               `json:"clientId"`
	NonMembership    bool                `json:"nonMembership"`
	AspID            int64               `json:"aspId"`
	SubServiceID     int64               `json:"subServiceId"`
	Date             string              `json:"date"`
	IsMobile         bool                `json:"isMobile"`
	EstimatedTotalKm decimal.NullDecimal `json:"estimatedTotalKm"`
	RouteDeviationKm decimal.NullDecimal `json:"routeDeviationKm"`
	Activity         ChargeRef           `json:"activity"`
	ChargePolicy     ChargeFetchPolicy   `json:"chargePolicy"`
}

func (r RouteDeviationRequest) validate() error {
	if r.ClientID <= 0 {
		return validationError("Client id is required")
	}
	if err := validateAspContext(r.AspID, r.SubServiceID, r.Date); err != nil {
		return err
	}
	if err := validateRequiredKm(r.EstimatedTotalKm); err != nil {
		return err
	}
	if err := validateRequiredKm(r.RouteDeviationKm); err != nil {
		return err
	}
	return validateChargeRef(r.ChargePolicy, r.Activity, r.AspID)
}

type ActivityInput struct {
	ActivityID   int64             `json:"activityId"`
	AspID        int64             `json:"aspId"`
	SubServiceID int64             `json:"subServiceId"`
	Date         string            `json:"date"`
	IsMobile     bool              `json:"isMobile"`
	Points       TripPoints        `json:"points"`
	ChargePolicy ChargeFetchPolicy `json:"chargePolicy"`
}

type ActivityCostsRequest struct {
	ClientID      int64           `json:"clientId"`
	CaseDetailID  int64           `json:"caseDetailId"`
	NonMembership bool            `json:"nonMembership"`
	Activities    []ActivityInput `json:"activities"`
}

func (r ActivityCostsRequest) validate() error {
	if r.ClientID <= 0 {
		return validationError("Client id is required")
	}
	if r.CaseDetailID <= 0 {
		return validationError("Case detail id is required")
	}
	if len(r.Activities) == 0 {
		return validationError("At least one activity is required")
	}
	for _, a := range r.Activities {
		if a.ActivityID <= 0 {
			return validationError("Activity id is required")
		}
		if err := r.clientRequest(a).validate(); err != nil {
			return err
		}
		if err := validateAspContext(a.AspID, a.SubServiceID, a.Date); err != nil {
			return err
		}
	}
	return nil
}

func (r ActivityCostsRequest) clientRequest(a ActivityInput) ClientCostRequest {
	return ClientCostRequest{
		ClientID:      r.ClientID,
		SubServiceID:  a.SubServiceID,
		AspID:         a.AspID,
		NonMembership: r.NonMembership,
		Points:        a.Points,
		Activity:      ChargeRef{CaseDetailID: r.CaseDetailID, ActivityID: a.ActivityID},
		ChargePolicy:  a.ChargePolicy,
	}
}

// aspRequest prices the ASP side on the distance the client side already resolved.
func (r ActivityCostsRequest) aspRequest(a ActivityInput, totalKm decimal.Decimal) AspCostRequest {
	return AspCostRequest{
		AspID:        a.AspID,
		SubServiceID: a.SubServiceID,
		Date:         a.Date,
		IsMobile:     a.IsMobile,
		TotalKm:      decimal.NewNullDecimal(totalKm),
		Activity:     ChargeRef{CaseDetailID: r.CaseDetailID, ActivityID: a.ActivityID},
		ChargePolicy: a.ChargePolicy,
	}
}

func validatePoints(p TripPoints) error {
	if p.Asp.IsZero() || p.Pickup.IsZero() {
		return validationError("ASP and pickup locations are required")
	}
	if p.Drop != nil && p.Drop.IsZero() {
		return validationError("Drop location is incomplete")
	}
	return nil
}

func validateAspContext(aspID, subServiceID int64, date string) error {
	if aspID <= 0 {
		return validationError("ASP id is required")
	}
	if subServiceID <= 0 {
		return validationError("Sub service id is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return validationError("Date must be in YYYY-MM-DD format")
	}
	return nil
}

func validateChargeRef(policy ChargeFetchPolicy, ref ChargeRef, aspID int64) error {
	if _, ok := policy.Kind(); !ok {
		return nil
	}
	if ref.CaseDetailID <= 0 {
		return validationError("Case detail id is required")
	}
	if ref.ActivityID <= 0 {
		return validationError("Activity id is required")
	}
	if aspID <= 0 {
		return validationError("ASP id is required")
	}
	return nil
}

func validateKm(km decimal.Decimal) error {
	if km.IsNegative() {
		return validationError("Distance must not be negative")
	}
	return nil
}

func validateRequiredKm(km decimal.NullDecimal) error {
	if !km.Valid {
		return validationError("Distance is required")
	}
	return validateKm(km.Decimal)
}

func validateExcess(e *ExcessTowing) error {
	if e != nil && e.IsExcess && e.ExcessKm.IsNegative() {
		return validationError("Distance must not be negative")
	}
	return nil
}
