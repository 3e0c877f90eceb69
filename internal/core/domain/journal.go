package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// JournalCodeDateLayout is the date segment of a journal code.
	JournalCodeDateLayout = "20060102"
	// JournalSeqWidth is the zero padded width of the sequence segment.
	JournalSeqWidth = 4
	// MaxTransactionTypeLength and MaxStoreIDLength follow the column widths of
	// journal_configs.transaction_type and accounts.store_id.
	MaxTransactionTypeLength = 50
	MaxStoreIDLength         = 64
)

// Well known transaction types.
const (
	TxSale            = "SALE"
	TxBuy             = "BUY"
	TxStockAdjustment = "STOCK_ADJUSTMENT"
)

// Journal is the header of one recorded business transaction.
// Store and type are encoded in Code, which is the only persisted link to either.
type Journal struct {
	JournalID       string          `json:"uuid"`
	Code            string          `json:"code"`
	StoreID         string          `json:"storeUuid"`
	TransactionType string          `json:"transactionType"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	VerifiedBy      string          `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	Details         []JournalDetail `json:"details,omitempty"`
}

// IsVerified reports whether the journal has been verified.
func (j Journal) IsVerified() bool {
	return j.VerifiedAt != nil
}

// JournalDetail is one flattened (key, value) fact of a journal.
type JournalDetail struct {
	DetailID    string    `json:"uuid"`
	JournalCode string    `json:"journalCode"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JournalCode is the parsed form of {TYPE}-{store}-{YYYYMMDD}-{seq}.
type JournalCode struct {
	Type    string
	StoreID string
	Date    string
	Seq     int
}

// JournalCodePrefix returns the per type, store and day bucket a code belongs to.
func JournalCodePrefix(txType, storeID string, day time.Time) string {
	return fmt.Sprintf("%s-%s-%s", txType, storeID, day.Format(JournalCodeDateLayout))
}

// FormatJournalCode appends the zero padded sequence to a bucket prefix.
func FormatJournalCode(prefix string, seq int) string {
	return fmt.Sprintf("%s-%0*d", prefix, JournalSeqWidth, seq)
}

// ValidateTransactionType rejects types that would break positional code parsing.
func ValidateTransactionType(txType string) error {
	if strings.TrimSpace(txType) == "" {
		return fmt.Errorf("transaction type is required")
	}
	if strings.Contains(txType, "-") {
		return fmt.Errorf("transaction type %q must not contain '-'", txType)
	}
	if len(txType) > MaxTransactionTypeLength {
		return fmt.Errorf("transaction type must be at most %d characters", MaxTransactionTypeLength)
	}
	return nil
}

// ValidateStoreID rejects store ids that cannot be stored or encoded in a code.
func ValidateStoreID(storeID string) error {
	if storeID == "" {
		return fmt.Errorf("store id is required")
	}
	if len(storeID) > MaxStoreIDLength {
		return fmt.Errorf("store id must be at most %d characters", MaxStoreIDLength)
	}
	return nil
}

// TypeFromCode returns the part of a journal code before its first hyphen.
func TypeFromCode(code string) string {
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[:i]
	}
	return code
}

// SeqFromCode parses the segment after the last hyphen.
func SeqFromCode(code string) (int, error) {
	i := strings.LastIndexByte(code, '-')
	return strconv.Atoi(code[i+1:])
}

// ParseJournalCode splits a journal code into its segments. The store id may
// itself contain hyphens, so it is taken as everything between the type and
// the trailing date and sequence segments.
func ParseJournalCode(code string) (JournalCode, error) {
	first := strings.IndexByte(code, '-')
	last := strings.LastIndexByte(code, '-')
	if first < 0 || last <= first {
		return JournalCode{}, fmt.Errorf("malformed journal code %q", code)
	}
	seq, err := strconv.Atoi(code[last+1:])
	if err != nil {
		return JournalCode{}, fmt.Errorf("malformed journal code %q: %w", code, err)
	}
	rest := code[first+1 : last]
	dateAt := strings.LastIndexByte(rest, '-')
	if dateAt <= 0 {
		return JournalCode{}, fmt.Errorf("malformed journal code %q", code)
	}
	return JournalCode{
		Type:    code[:first],
		StoreID: rest[:dateAt],
		Date:    rest[dateAt+1:],
		Seq:     seq,
	}, nil
}
