package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

const (
	ConditionGood   = "BOA"
	ConditionMedium = "MEDIA"
	ConditionBad    = "RUIM"
)

// ValidCondition reports whether c is one of BOA, MEDIA or RUIM.
func ValidCondition(c string) bool {
	switch c {
	case ConditionGood, ConditionMedium, ConditionBad:
		return true
	}
	return false
}

// ImageList holds the public URLs of a part's processed images.
type ImageList []string

type Dimensions struct {
	Width  float64 `json:"width" example:"45"`
	Height float64 `json:"height" example:"20"`
	Depth  float64 `json:"depth" example:"30"`
	Unit   string  `json:"unit" example:"cm"`
}

type Compatibility struct {
	Brand string `json:"brand" example:"Fiat"`
	Model string `json:"model" example:"Palio"`
	Year  string `json:"year" example:"2008-2014"`
}

// AdReference is a marketplace listing that backed the stored price.
type AdReference struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	URL   string  `json:"url"`
}

// ═══════════════════════════════════════════════════════════
// Main Part Model (GORM)
// ═══════════════════════════════════════════════════════════

type Part struct {
	ID             uuid.UUID                          `json:"id" gorm:"type:uuid;primaryKey"`
	VehicleID      uuid.UUID                          `json:"vehicle_id" gorm:"type:uuid;not null;index:idx_parts_vehicle"`
	Vehicle        *Vehicle                           `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID;references:ID;constraint:OnDelete:RESTRICT"`
	Name           string                             `json:"name" gorm:"not null;index"`
	Description    string                             `json:"description" gorm:"type:text"`
	Condition      string                             `json:"condition" gorm:"not null;check:condition IN ('BOA', 'MEDIA', 'RUIM');index"`
	StockAddress   string                             `json:"stock_address"`
	Observations   string                             `json:"observations" gorm:"type:text"`
	Images         ImageList                          `json:"images" gorm:"type:jsonb;not null;default:'[]'"`
	Dimensions     *datatypes.JSONType[Dimensions]    `json:"dimensions,omitempty"`
	Weight         *float64                           `json:"weight,omitempty" gorm:"type:numeric(10,2)"`
	Compatibility  datatypes.JSONSlice[Compatibility] `json:"compatibility" form:"-"`
	MinPrice       *float64                           `json:"min_price,omitempty" gorm:"type:numeric(12,2)"`
	SuggestedPrice *float64                           `json:"suggested_price,omitempty" gorm:"type:numeric(12,2)"`
	MaxPrice       *float64                           `json:"max_price,omitempty" gorm:"type:numeric(12,2)"`
	Ads            datatypes.JSONSlice[AdReference]   `json:"ads"`
	ProcessedAt    *time.Time                         `json:"processed_at,omitempty"`
	CreatedAt      time.Time                          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                          `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.Condition == "" {
		p.Condition = ConditionGood
	}
	return nil
}

func (Part) TableName() string {
	return "parts"
}

// ImageFolder is the storage folder holding every image of the part.
func (p *Part) ImageFolder(root string) string {
	return root + "/" + p.ID.String()
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

// PartRequest is the multipart form of POST /parts. Images travel in the
// "images" file field.
type PartRequest struct {
	VehicleID    string `form:"vehicle_id" binding:"required,uuid"`
	Name         string `form:"name" binding:"required"`
	Description  string `form:"description"`
	Condition    string `form:"condition" binding:"omitempty,oneof=BOA MEDIA RUIM"`
	StockAddress string `form:"stock_address"`
	Observations string `form:"observations"`
}

type UpdatePartRequest struct {
	VehicleID      *uuid.UUID       `json:"vehicle_id" form:"-"`
	Name           *string          `json:"name" form:"name"`
	Description    *string          `json:"description" form:"description"`
	Condition      *string          `json:"condition" form:"condition" binding:"omitempty,oneof=BOA MEDIA RUIM"`
	StockAddress   *string          `json:"stock_address" form:"stock_address"`
	Observations   *string          `json:"observations" form:"observations"`
	Dimensions     *Dimensions      `json:"dimensions" form:"-"`
	Weight         *float64         `json:"weight" form:"weight" binding:"omitempty,min=0"`
	Compatibility  *[]Compatibility `json:"compatibility" form:"-"`
	MinPrice       *float64         `json:"min_price" binding:"omitempty,min=0"`
	SuggestedPrice *float64         `json:"suggested_price" binding:"omitempty,min=0"`
	MaxPrice       *float64         `json:"max_price" binding:"omitempty,min=0"`
}

// Updates returns the column map for a partial update.
func (r UpdatePartRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.VehicleID != nil {
		updates["vehicle_id"] = *r.VehicleID
	}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Condition != nil {
		updates["condition"] = *r.Condition
	}
	if r.StockAddress != nil {
		updates["stock_address"] = *r.StockAddress
	}
	if r.Observations != nil {
		updates["observations"] = *r.Observations
	}
	if r.Dimensions != nil {
		updates["dimensions"] = datatypes.NewJSONType(*r.Dimensions)
	}
	if r.Weight != nil {
		updates["weight"] = *r.Weight
	}
	if r.Compatibility != nil {
		updates["compatibility"] = datatypes.JSONSlice[Compatibility](*r.Compatibility)
	}
	if r.MinPrice != nil {
		updates["min_price"] = *r.MinPrice
	}
	if r.SuggestedPrice != nil {
		updates["suggested_price"] = *r.SuggestedPrice
	}
	if r.MaxPrice != nil {
		updates["max_price"] = *r.MaxPrice
	}
	return updates
}

// PriceLookupRequest is the body of POST /parts/price-lookup.
type PriceLookupRequest struct {
	PartName            string  `json:"part_name" binding:"required" example:"Farol Dianteiro"`
	PartDescription     string  `json:"part_description" example:"Lado esquerdo"`
	VehicleBrand        string  `json:"vehicle_brand" example:"Fiat"`
	VehicleModel        string  `json:"vehicle_model" example:"Palio"`
	VehicleYear         int     `json:"vehicle_year" binding:"omitempty,min=1900,max=2100" example:"2012"`
	Generic             bool    `json:"generic"`
	MaxPriceVariation   float64 `json:"max_price_variation" binding:"omitempty,min=0"`
	MinConfidence       float64 `json:"min_confidence" binding:"omitempty,min=0,max=1"`
	IncludeGenericParts *bool   `json:"include_generic_parts"`
}

// ProcessPartRequest is the optional body of POST /parts/:id/process.
type ProcessPartRequest struct {
	Generic bool `json:"generic"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type PartStatsResponse struct {
	TotalParts            int64            `json:"total_parts"`
	PricedParts           int64            `json:"priced_parts"`
	UnpricedParts         int64            `json:"unpriced_parts"`
	AverageSuggestedPrice float64          `json:"average_suggested_price"`
	TotalStockValue       float64          `json:"total_stock_value"`
	ByCondition           map[string]int64 `json:"by_condition"`
	TotalVehicles         int64            `json:"total_vehicles"`
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM
// ═══════════════════════════════════════════════════════════

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = make(ImageList, 0)
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ImageList")
	}
	return json.Unmarshal(bytes, l)
}

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}
