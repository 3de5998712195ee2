package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionPlanPriceConsistent(t *testing.T) {
	plan := SubscriptionPlan{BasePrice: 1000, TaxAmount: 180, FinalPrice: 1180}
	assert.True(t, plan.PriceConsistent())

	plan.FinalPrice = 1200
	assert.False(t, plan.PriceConsistent())
}
