package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a globally visible subscription catalog entry, mutated only by
// admins. Every amenity flag is stored explicitly; the create/update API
// requires each one to be present rather than defaulting omissions.
type Plan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	MonthlyPrice float64            `bson:"monthlyPrice" json:"monthlyPrice"`
	YearlyPrice  float64            `bson:"yearlyPrice" json:"yearlyPrice"`

	HasCardio           bool `bson:"hasCardio" json:"hasCardio"`
	HasSauna            bool `bson:"hasSauna" json:"hasSauna"`
	HasPersonalTraining bool `bson:"hasPersonalTraining" json:"hasPersonalTraining"`
	HasGroupClasses     bool `bson:"hasGroupClasses" json:"hasGroupClasses"`
	HasLocker           bool `bson:"hasLocker" json:"hasLocker"`
	HasNutritionConsult bool `bson:"hasNutritionConsult" json:"hasNutritionConsult"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BillingCycle selects which plan price applies and how long the
// subscription window runs.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// PriceFor returns the plan price for the given billing cycle.
func (p *Plan) PriceFor(cycle BillingCycle) float64 {
	if cycle == CycleYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}
