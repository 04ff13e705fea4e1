package entities

import "time"

// Project is the read-only project header an estimate is attached to.
//
// Projects are owned by another service; the billing tables only mirror the
// fields needed for defaults, filtering and display.
type Project struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	ClientID     int64      `json:"client_id"`
	ClientName   string     `json:"client_name,omitempty"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p Principal) Authenticated() bool {
	return p.ID > 0
}
