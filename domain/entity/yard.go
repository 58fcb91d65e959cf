package entity

import "time"

type Yard struct {
	ID        int64     `json:"id"`
	YardName  string    `json:"yard_name"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
