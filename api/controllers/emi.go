package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type emiRequest struct {
	Principal int64 `json:"principal"`
	Months    int   `json:"months"`
	// AnnualInterestPercent defaults to the rate of the tenure.
	AnnualInterestPercent *float64 `json:"annualInterestPercent" validate:"omitempty,min=0,max=100"`
}

type emiView struct {
	pricing.Plan
	MonthlyLabel string `json:"monthlyLabel"`
	TotalLabel   string `json:"totalLabel"`
}

// EMICalculate computes one schedule. Preconditions are enforced by the
// pricing engine.
func EMICalculate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload emiRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rate := pricing.TenureRate(payload.Months)
		if payload.AnnualInterestPercent != nil {
			rate = *payload.AnnualInterestPercent
		}

		plan, err := pricing.EMISchedule(payload.Principal, payload.Months, rate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, emiView{
			Plan:         plan,
			MonthlyLabel: pricing.FormatAmount(plan.Monthly),
			TotalLabel:   pricing.FormatAmount(plan.Total),
		})
	}
}
