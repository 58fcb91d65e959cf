package entity

import "time"

// Carrier is a trucking company that moves trailers through the yards.
// CarrierCode is the human-facing identifier (CAR-001, CAR-002, ...).
type Carrier struct {
	ID            int64     `json:"id"`
	CarrierCode   string    `json:"carrier_code"`
	CompanyName   string    `json:"company_name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
}
