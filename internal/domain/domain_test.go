package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionIsValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{
			"active inside window",
			Subscription{Status: SubscriptionActive, EndDate: now.Add(24 * time.Hour)},
			true,
		},
		{
			"active on the boundary",
			Subscription{Status: SubscriptionActive, EndDate: now},
			true,
		},
		{
			"active but window lapsed",
			Subscription{Status: SubscriptionActive, EndDate: now.Add(-time.Second)},
			false,
		},
		{
			"cancelled inside window",
			Subscription{Status: SubscriptionCancelled, EndDate: now.Add(24 * time.Hour)},
			false,
		},
		{
			"expired status",
			Subscription{Status: SubscriptionExpired, EndDate: now.Add(24 * time.Hour)},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sub.IsValid(now))
		})
	}
}

func TestPlanPriceFor(t *testing.T) {
	plan := Plan{MonthlyPrice: 999, YearlyPrice: 9990}

	assert.Equal(t, 999.0, plan.PriceFor(CycleMonthly))
	assert.Equal(t, 9990.0, plan.PriceFor(CycleYearly))
}

func TestCycleDuration(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, CycleDuration(CycleMonthly))
	assert.Equal(t, 365*24*time.Hour, CycleDuration(CycleYearly))
}

func TestAssignmentBlocks(t *testing.T) {
	assert.True(t, (&TrainerAssignment{Status: AssignmentPending}).Blocks())
	assert.True(t, (&TrainerAssignment{Status: AssignmentApproved}).Blocks())
	assert.False(t, (&TrainerAssignment{Status: AssignmentRejected}).Blocks())
	assert.False(t, (&TrainerAssignment{Status: AssignmentCompleted}).Blocks())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleTrainer))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
