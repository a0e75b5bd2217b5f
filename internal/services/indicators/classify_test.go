package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradePulse/internal/domain/models"
)

func TestClassifyRSI(t *testing.T) {
	cases := []struct {
		name     string
		rsi      float64
		action   models.Action
		strength float64
	}{
		{"deep oversold", 0, models.ActionBuy, 1},
		{"oversold", 15, models.ActionBuy, 0.5},
		{"boundary low", 30, models.ActionHold, 0},
		{"neutral", 50, models.ActionHold, 0},
		{"boundary high", 70, models.ActionHold, 0},
		{"overbought", 85, models.ActionSell, 0.5},
		{"deep overbought", 100, models.ActionSell, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ClassifyRSI(tc.rsi)
			assert.Equal(t, tc.action, res.Classification)
			assert.InDelta(t, tc.strength, res.Strength, 1e-9)
			assert.Equal(t, tc.rsi, res.Value)
			assert.GreaterOrEqual(t, res.Strength, 0.0)
			assert.LessOrEqual(t, res.Strength, 1.0)
		})
	}
}

func TestClassifyStochastic(t *testing.T) {
	cases := []struct {
		name     string
		k        float64
		action   models.Action
		strength float64
	}{
		{"deep oversold", 0, models.ActionBuy, 1},
		{"oversold", 10, models.ActionBuy, 0.5},
		{"boundary low", 20, models.ActionHold, 0},
		{"neutral", 50, models.ActionHold, 0},
		{"boundary high", 80, models.ActionHold, 0},
		{"overbought", 90, models.ActionSell, 0.5},
		{"deep overbought", 100, models.ActionSell, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ClassifyStochastic(tc.k)
			assert.Equal(t, tc.action, res.Classification)
			assert.InDelta(t, tc.strength, res.Strength, 1e-9)
			assert.GreaterOrEqual(t, res.Strength, 0.0)
			assert.LessOrEqual(t, res.Strength, 1.0)
		})
	}
}
