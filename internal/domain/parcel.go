package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ParcelStatusAvailable = "available"
	ParcelStatusSold      = "sold"
)

// Parcel represents a tract of land offered for sale
type Parcel struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	ParcelNumber string          `json:"parcel_number" db:"parcel_number"`
	Location     string          `json:"location" db:"location"`
	Acreage      decimal.Decimal `json:"acreage" db:"acreage"`
	AskingPrice  decimal.Decimal `json:"asking_price" db:"asking_price"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateParcelRequest struct {
	ParcelNumber string          `json:"parcel_number" validate:"required,max=64"`
	Location     string          `json:"location" validate:"required,max=255"`
	Acreage      decimal.Decimal `json:"acreage" validate:"decimal_gt=0"`
	AskingPrice  decimal.Decimal `json:"asking_price" validate:"decimal_gte=0"`
}
