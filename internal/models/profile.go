package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the company data of an owner that is printed on
// their quotes. There is at most one profile per owner.
type Profile struct {
	DefaultModel
	OwnerID  uuid.UUID `gorm:"uniqueIndex"`
	FullName string
	TaxID    string
	Email    string
	Phone    string
	Address  string
	LogoURL  string
}

func (p *Profile) BeforeSave(_ *gorm.DB) error {
	p.FullName = strings.TrimSpace(p.FullName)
	p.TaxID = strings.TrimSpace(p.TaxID)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.LogoURL = strings.TrimSpace(p.LogoURL)

	return nil
}

// Returns all profiles on this instance for export
func (Profile) Export() (json.RawMessage, error) {
	var profiles []Profile
	err := DB.Where(&Profile{}).Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&profiles)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
