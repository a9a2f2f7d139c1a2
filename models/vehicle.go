package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Vehicle Model (GORM)
// ═══════════════════════════════════════════════════════════

// Vehicle is a car brought into the yard; parts are dismantled from it.
type Vehicle struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	InternalID   string    `json:"internal_id" gorm:"uniqueIndex;not null"`
	Brand        string    `json:"brand" gorm:"not null;index"`
	Model        string    `json:"model" gorm:"not null;index"`
	Year         int       `json:"year" gorm:"not null"`
	Version      string    `json:"version"`
	Color        string    `json:"color"`
	Plate        string    `json:"plate" gorm:"index"`
	Chassis      string    `json:"chassis"`
	Mileage      int       `json:"mileage" gorm:"default:0;check:mileage >= 0"`
	Observations string    `json:"observations" gorm:"type:text"`
	PartsCount   *int64    `json:"parts_count,omitempty" gorm:"-"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type VehicleRequest struct {
	InternalID   string `json:"internal_id" binding:"required" example:"RF-0042"`
	Brand        string `json:"brand" binding:"required" example:"Fiat"`
	Model        string `json:"model" binding:"required" example:"Palio"`
	Year         int    `json:"year" binding:"required,min=1900,max=2100" example:"2012"`
	Version      string `json:"version" example:"1.0 Fire"`
	Color        string `json:"color" example:"Prata"`
	Plate        string `json:"plate" example:"ABC1D23"`
	Chassis      string `json:"chassis"`
	Mileage      int    `json:"mileage" binding:"min=0" example:"154000"`
	Observations string `json:"observations"`
}

type UpdateVehicleRequest struct {
	InternalID   *string `json:"internal_id"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Year         *int    `json:"year" binding:"omitempty,min=1900,max=2100"`
	Version      *string `json:"version"`
	Color        *string `json:"color"`
	Plate        *string `json:"plate"`
	Chassis      *string `json:"chassis"`
	Mileage      *int    `json:"mileage" binding:"omitempty,min=0"`
	Observations *string `json:"observations"`
}

// ToVehicle builds a new Vehicle from a create request.
func (r VehicleRequest) ToVehicle() Vehicle {
	return Vehicle{
		InternalID:   r.InternalID,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		Version:      r.Version,
		Color:        r.Color,
		Plate:        r.Plate,
		Chassis:      r.Chassis,
		Mileage:      r.Mileage,
		Observations: r.Observations,
	}
}

// Updates returns the column map for a partial update. Only fields present
// in the request are included.
func (r UpdateVehicleRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.InternalID != nil {
		updates["internal_id"] = *r.InternalID
	}
	if r.Brand != nil {
		updates["brand"] = *r.Brand
	}
	if r.Model != nil {
		updates["model"] = *r.Model
	}
	if r.Year != nil {
		updates["year"] = *r.Year
	}
	if r.Version != nil {
		updates["version"] = *r.Version
	}
	if r.Color != nil {
		updates["color"] = *r.Color
	}
	if r.Plate != nil {
		updates["plate"] = *r.Plate
	}
	if r.Chassis != nil {
		updates["chassis"] = *r.Chassis
	}
	if r.Mileage != nil {
		updates["mileage"] = *r.Mileage
	}
	if r.Observations != nil {
		updates["observations"] = *r.Observations
	}
	return updates
}
