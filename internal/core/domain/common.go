package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Position is the side of a posting.
type Position string

const (
	Debit  Position = "DEBIT"
	Credit Position = "CREDIT"
)

func (p Position) Valid() bool {
	return p == Debit || p == Credit
}
