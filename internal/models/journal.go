package models

import (
	"database/sql"
	"time"
)

// Journal mirrors a row of the journals table. Store and type live only in Code.
type Journal struct {
	JournalID  string         `db:"journal_id"`
	Code       string         `db:"code"`
	CreatedAt  time.Time      `db:"created_at"`
	CreatedBy  string         `db:"created_by"`
	VerifiedBy sql.NullString `db:"verified_by"`
	VerifiedAt sql.NullTime   `db:"verified_at"`
}

// JournalDetail mirrors a row of the journal_details table.
type JournalDetail struct {
	DetailID    string    `db:"detail_id"`
	JournalCode string    `db:"journal_code"`
	LineNo      int       `db:"line_no"`
	Key         string    `db:"detail_key"`
	Value       string    `db:"detail_value"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}
