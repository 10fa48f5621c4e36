package models

import "github.com/shopspring/decimal"

// Goal is the revenue target for one category. Category is the primary key,
// so a category never has two goals.
type Goal struct {
	Category Category        `gorm:"column:type;primaryKey" json:"type"`
	Target   decimal.Decimal `gorm:"column:value;type:numeric(12,2);not null" json:"value"`
}

// TableName maps Goal onto the `goals` table.
func (Goal) TableName() string {
	return "goals"
}

// DefaultGoals returns the targets written on first run when no goals exist.
func DefaultGoals() []Goal {
	return []Goal{
		{Category: CategoryBodyworkPaint, Target: decimal.NewFromInt(10000)},
		{Category: CategoryPaintMirroring, Target: decimal.NewFromInt(5000)},
		{Category: CategoryInteriorCleaning, Target: decimal.NewFromInt(3000)},
		{Category: CategoryWheelRim, Target: decimal.NewFromInt(4000)},
		{Category: CategoryDSP, Target: decimal.NewFromInt(6000)},
		{Category: CategoryMechanics, Target: decimal.NewFromInt(8000)},
		{Category: CategoryHeadlights, Target: decimal.NewFromInt(3500)},
		{Category: CategoryPrivate, Target: decimal.NewFromInt(5000)},
		{Category: CategoryOther, Target: decimal.NewFromInt(2000)},
	}
}
