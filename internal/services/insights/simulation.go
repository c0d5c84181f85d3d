package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/models"
)

// MaxSimulationDays bounds the projection horizon.
const MaxSimulationDays = 3650

// Source supplies the randomness for simulations. *rand.Rand satisfies it,
// and tests substitute a fixed sequence.
type Source interface {
	Float64() float64
}

// ErrInvalidHorizon is returned when the requested horizon is out of range.
var ErrInvalidHorizon = fmt.Errorf("simulation days must be between 1 and %d", MaxSimulationDays)

// Simulate projects the portfolio value over the horizon using uniform daily
// returns in [-5%, +5%]. Returns accumulate additively against the starting
// value; compound mode applies each day's return to the prior day's value
// instead.
func Simulate(rng Source, currentValue decimal.Decimal, days int, compound bool) (*models.SimulationResult, error) {
	if days < 1 || days > MaxSimulationDays {
		return nil, ErrInvalidHorizon
	}

	result := &models.SimulationResult{
		HorizonDays:  days,
		CurrentValue: currentValue,
		DailyReturns: make([]decimal.Decimal, 0, days),
	}

	simulated := currentValue
	cumulative := decimal.Zero
	for i := 0; i < days; i++ {
		daily := decimal.NewFromFloat((rng.Float64() - 0.5) * 0.1)
		result.DailyReturns = append(result.DailyReturns, daily)
		if compound {
			simulated = simulated.Mul(decimal.NewFromInt(1).Add(daily))
		} else {
			cumulative = cumulative.Add(daily)
			simulated = currentValue.Mul(decimal.NewFromInt(1).Add(cumulative))
		}
	}

	result.SimulatedValue = simulated
	result.TotalReturn = simulated.Sub(currentValue)
	if !currentValue.IsZero() {
		result.ReturnPercentage = result.TotalReturn.DivRound(currentValue, 4).Mul(hundred)
	}
	return result, nil
}
