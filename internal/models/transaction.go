package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"painel/internal/uuid"
)

// Transaction is one recorded service sale. Column and JSON names follow the
// hosted `services` table so both storage variants share one layout.
type Transaction struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	Vehicle      string          `gorm:"not null" json:"vehicle"`
	LicensePlate string          `gorm:"column:license_plate;not null" json:"license_plate"`
	Category     Category        `gorm:"column:type;not null;index" json:"type"`
	Amount       decimal.Decimal `gorm:"column:value;type:numeric(12,2);not null" json:"value"`
	Date         time.Time       `gorm:"column:date;not null;index" json:"date"`
}

// TableName maps Transaction onto the `services` table.
func (Transaction) TableName() string {
	return "services"
}

// BeforeCreate hook generates a UUIDv7 for records created without an ID
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}
