package models

import "database/sql"

// Account mirrors a row of the accounts table.
type Account struct {
	AccountID       string         `db:"account_id"`
	StoreID         string         `db:"store_id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	Category        string         `db:"category"`
	NormalBalance   string         `db:"normal_balance"`
	IsSystem        bool           `db:"is_system"`
	ParentAccountID sql.NullString `db:"parent_account_id"`
	Description     sql.NullString `db:"description"`
	AuditFields
}
