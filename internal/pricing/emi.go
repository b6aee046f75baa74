package pricing

import (
	"math"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// EMIThreshold is the smallest price for which EMI options are offered.
const EMIThreshold int64 = 3000

// MaxPrincipal is the largest principal a schedule is computed for.
const MaxPrincipal int64 = 1_000_000_000_000

// DefaultEMITenures are the tenures, in months, offered on product pages.
var DefaultEMITenures = []int{3, 6, 9, 12}

// tenureRates maps offered tenures to their annual interest percent. Short
// tenures are interest free.
var tenureRates = map[int]float64{
	3:  0,
	6:  0,
	9:  13,
	12: 14,
	18: 15,
	24: 16,
}

// Plan is one EMI schedule.
type Plan struct {
	Principal             int64   `json:"principal"`
	Months                int     `json:"months"`
	AnnualInterestPercent float64 `json:"annualInterestPercent"`
	Monthly               int64   `json:"monthly"`
	Total                 int64   `json:"total"`
	Interest              int64   `json:"interest"`
	NoCost                bool    `json:"noCost"`
}

// EMISchedule computes the monthly installment for principal over months.
// Zero interest yields ceil(principal/months); otherwise the amortizing
// formula is applied and ceiled. Principals above MaxPrincipal and schedules
// whose total does not fit an int64 are rejected as invalid input.
func EMISchedule(principal int64, months int, annualInterestPercent float64) (Plan, error) {
	if principal <= 0 || principal > MaxPrincipal {
		return Plan{}, pkgerrors.New(pkgerrors.CodeInvalidInput, "principal must be positive and at most 1,000,000,000,000").
			WithDetails(map[string]any{"principal": principal, "max": MaxPrincipal})
	}
	if months < 1 {
		return Plan{}, pkgerrors.New(pkgerrors.CodeInvalidInput, "months must be at least 1").
			WithDetails(map[string]any{"months": months})
	}
	if annualInterestPercent < 0 || math.IsNaN(annualInterestPercent) || math.IsInf(annualInterestPercent, 0) {
		return Plan{}, pkgerrors.New(pkgerrors.CodeInvalidInput, "interest must be a non-negative number").
			WithDetails(map[string]any{"annualInterestPercent": annualInterestPercent})
	}

	n := int64(months)
	var monthly int64
	r := annualInterestPercent / 12 / 100
	growth := math.Pow(1+r, float64(months))
	switch {
	case annualInterestPercent == 0:
		monthly = principal / n
		if principal%n != 0 {
			monthly++
		}
	case growth == 1:
		// Interest too small to register in float64 still costs something.
		monthly = principal/n + 1
	default:
		exact := math.Ceil(float64(principal) * r * growth / (growth - 1))
		if math.IsNaN(exact) || exact >= math.MaxInt64 {
			return Plan{}, scheduleTooLarge(principal, months, annualInterestPercent)
		}
		monthly = int64(exact)
	}
	if monthly > math.MaxInt64/n {
		return Plan{}, scheduleTooLarge(principal, months, annualInterestPercent)
	}

	total := monthly * n
	return Plan{
		Principal:             principal,
		Months:                months,
		AnnualInterestPercent: annualInterestPercent,
		Monthly:               monthly,
		Total:                 total,
		Interest:              total - principal,
		NoCost:                annualInterestPercent == 0,
	}, nil
}

func scheduleTooLarge(principal int64, months int, rate float64) error {
	return pkgerrors.New(pkgerrors.CodeInvalidInput, "schedule total exceeds the representable amount").
		WithDetails(map[string]any{"principal": principal, "months": months, "annualInterestPercent": rate})
}

// TenureRate returns the annual interest percent offered for a tenure.
// Unlisted tenures fall back to the longest listed rate.
func TenureRate(months int) float64 {
	if rate, ok := tenureRates[months]; ok {
		return rate
	}
	return tenureRates[24]
}

// EMIOptions lists one plan per tenure for prices at or above EMIThreshold.
// Below the threshold, or for invalid tenures, nothing is offered.
func EMIOptions(price int64, tenures []int) []Plan {
	if price < EMIThreshold {
		return nil
	}
	plans := make([]Plan, 0, len(tenures))
	for _, months := range tenures {
		plan, err := EMISchedule(price, months, TenureRate(months))
		if err != nil {
			continue
		}
		plans = append(plans, plan)
	}
	return plans
}
