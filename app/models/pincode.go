package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// PincodeRecord is read-only reference data for the geo resolver. A partner
// address is only valid when its area is one of the record's areas; city and
// state are derived from the record, never submitted by callers.
type PincodeRecord struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Code  string `gorm:"type:char(6);uniqueIndex;not null" json:"code" validate:"required,len=6,numeric"`
	City  string `gorm:"type:varchar(100);not null" json:"city" validate:"required,max=100"`
	State string `gorm:"type:varchar(100);not null" json:"state" validate:"required,max=100"`
	Areas JSON   `gorm:"type:json" json:"areas"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *PincodeRecord) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// AreaNames decodes the stored areas into a string slice
func (r *PincodeRecord) AreaNames() ([]string, error) {
	if len(r.Areas) == 0 {
		return nil, nil
	}
	var areas []string
	if err := json.Unmarshal(r.Areas, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

// SetAreaNames encodes the given areas into the JSON column
func (r *PincodeRecord) SetAreaNames(areas []string) error {
	raw, err := json.Marshal(areas)
	if err != nil {
		return err
	}
	r.Areas = JSON(raw)
	return nil
}
