package models

import "database/sql"

// JournalConfig mirrors a row of the journal_configs table.
type JournalConfig struct {
	ConfigID        string         `db:"config_id"`
	StoreID         string         `db:"store_id"`
	TransactionType string         `db:"transaction_type"`
	MatchKind       string         `db:"match_kind"`
	DetailKey       string         `db:"detail_key"`
	AccountID       string         `db:"account_id"`
	Position        string         `db:"position"`
	Description     sql.NullString `db:"description"`
	AuditFields
	DeletedAt sql.NullTime   `db:"deleted_at"`
	DeletedBy sql.NullString `db:"deleted_by"`
}
