package pricing

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func TestZeroInterestScenario(t *testing.T) {
	plan, err := EMISchedule(29990, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4999), plan.Monthly)
	assert.Equal(t, int64(29994), plan.Total)
	assert.Equal(t, int64(4), plan.Interest)
	assert.True(t, plan.NoCost)
}

func TestZeroInterestOvercollectionBound(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 500; i++ {
		principal := int64(faker.IntRange(1, 500000))
		months := faker.IntRange(1, 36)
		plan, err := EMISchedule(principal, months, 0)
		require.NoError(t, err)
		collected := plan.Monthly * int64(months)
		if collected < principal || collected-principal >= int64(months) {
			t.Fatalf("principal=%d months=%d monthly=%d collected=%d", principal, months, plan.Monthly, collected)
		}
	}
}

func TestPositiveInterestIncreasesTotal(t *testing.T) {
	faker := gofakeit.New(11)
	for i := 0; i < 500; i++ {
		principal := int64(faker.IntRange(1, 500000))
		months := faker.IntRange(1, 36)
		rate := faker.Float64Range(0.5, 30)
		plan, err := EMISchedule(principal, months, rate)
		require.NoError(t, err)
		if plan.Monthly*int64(months) <= principal {
			t.Fatalf("principal=%d months=%d rate=%.2f monthly=%d", principal, months, rate, plan.Monthly)
		}
		assert.False(t, plan.NoCost)
	}
}

func TestAmortizingFormula(t *testing.T) {
	// 100000 at 12% over 12 months is the textbook 8884.88, ceiled.
	plan, err := EMISchedule(100000, 12, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(8885), plan.Monthly)
	assert.Equal(t, int64(106620), plan.Total)
}

func TestEMIRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		principal int64
		months    int
		rate      float64
	}{
		{principal: 0, months: 6},
		{principal: -10, months: 6},
		{principal: 1000, months: 0},
		{principal: 1000, months: -3},
		{principal: 1000, months: 6, rate: -1},
		{principal: MaxPrincipal + 1, months: 12},
		{principal: math.MaxInt64, months: 2},
		{principal: 9_000_000_000_000_000_000, months: 12, rate: 14},
		{principal: MaxPrincipal, months: 1_000_000, rate: 24},
	}
	for _, c := range cases {
		_, err := EMISchedule(c.principal, c.months, c.rate)
		if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidInput) {
			t.Fatalf("EMISchedule(%d, %d, %v) expected invalid input, got %v", c.principal, c.months, c.rate, err)
		}
	}
}

func TestEMIScheduleAtPrincipalCeiling(t *testing.T) {
	for _, months := range []int{1, 12, 360} {
		for _, rate := range []float64{0, 14, 100} {
			plan, err := EMISchedule(MaxPrincipal, months, rate)
			require.NoError(t, err, "months=%d rate=%v", months, rate)
			assert.Positive(t, plan.Monthly)
			assert.Equal(t, plan.Monthly*int64(months), plan.Total)
			if rate == 0 {
				assert.GreaterOrEqual(t, plan.Total, MaxPrincipal)
			} else {
				assert.Greater(t, plan.Total, MaxPrincipal)
			}
		}
	}

	plan, err := EMISchedule(MaxPrincipal, math.MaxInt, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), plan.Monthly)
	assert.Equal(t, int64(math.MaxInt64), plan.Total)
}

func TestEMIScheduleNegligibleInterestStillCosts(t *testing.T) {
	plan, err := EMISchedule(1200, 12, 1e-18)
	require.NoError(t, err)
	assert.Greater(t, plan.Total, int64(1200))
	assert.False(t, plan.NoCost)
}

func TestEMIOptionsThreshold(t *testing.T) {
	assert.Nil(t, EMIOptions(2999, DefaultEMITenures))

	plans := EMIOptions(3000, DefaultEMITenures)
	require.Len(t, plans, 4)
	assert.Equal(t, 3, plans[0].Months)
	assert.True(t, plans[0].NoCost)
	assert.True(t, plans[1].NoCost)
	assert.Equal(t, 13.0, plans[2].AnnualInterestPercent)
	assert.Equal(t, 14.0, plans[3].AnnualInterestPercent)
}

func TestEMIOptionsSkipsInvalidTenures(t *testing.T) {
	plans := EMIOptions(10000, []int{0, 6})
	require.Len(t, plans, 1)
	assert.Equal(t, 6, plans[0].Months)
}
