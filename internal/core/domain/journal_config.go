package domain

import (
	"fmt"
	"strings"
	"time"
)

// MatchKind distinguishes literal detail keys from key prefixes.
type MatchKind string

const (
	MatchExact  MatchKind = "EXACT"
	MatchPrefix MatchKind = "PREFIX"
)

// LegacyWildcardSuffix marks a prefix rule in payloads that do not carry a match kind.
const LegacyWildcardSuffix = "_"

// KeyMatch is the detail key side of a posting rule.
type KeyMatch struct {
	Kind MatchKind `json:"matchKind"`
	Key  string    `json:"detailKey"`
}

func ExactKey(key string) KeyMatch  { return KeyMatch{Kind: MatchExact, Key: key} }
func PrefixKey(key string) KeyMatch { return KeyMatch{Kind: MatchPrefix, Key: key} }

// Matches reports whether a concrete detail key is selected by the rule.
func (m KeyMatch) Matches(detailKey string) bool {
	switch m.Kind {
	case MatchExact:
		return detailKey == m.Key
	case MatchPrefix:
		return strings.HasPrefix(detailKey, m.Key)
	}
	return false
}

// NewKeyMatch builds a KeyMatch from API input. When kind is empty a key with
// the trailing underscore convention becomes a prefix rule.
func NewKeyMatch(kind, key string) (KeyMatch, error) {
	if key == "" {
		return KeyMatch{}, fmt.Errorf("detail key is required")
	}
	switch MatchKind(strings.ToUpper(kind)) {
	case MatchExact:
		return ExactKey(key), nil
	case MatchPrefix:
		return PrefixKey(key), nil
	case "":
		if strings.HasSuffix(key, LegacyWildcardSuffix) {
			return PrefixKey(key), nil
		}
		return ExactKey(key), nil
	}
	return KeyMatch{}, fmt.Errorf("unknown match kind %q", kind)
}

// JournalConfig is a posting rule mapping (transaction type, detail key) to an
// account and a debit/credit side.
type JournalConfig struct {
	ConfigID        string   `json:"uuid"`
	StoreID         string   `json:"storeUuid"`
	TransactionType string   `json:"transactionType"`
	Match           KeyMatch `json:"match"`
	AccountID       string   `json:"accountUuid"`
	Position        Position `json:"position"`
	Description     string   `json:"description,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy string     `json:"deletedBy,omitempty"`
}
