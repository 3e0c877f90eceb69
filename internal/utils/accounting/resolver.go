package accounting

import (
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
)

// ResolveConfigs returns the posting rules selecting detailKey for txType.
// Exact rules win outright. Otherwise the prefix rules sharing the longest
// matching prefix are returned. Several results mean a split posting.
func ResolveConfigs(configs []domain.JournalConfig, txType, detailKey string) []domain.JournalConfig {
	var exact, prefix []domain.JournalConfig
	longest := -1
	for _, cfg := range configs {
		if cfg.TransactionType != txType || !cfg.Match.Matches(detailKey) {
			continue
		}
		switch cfg.Match.Kind {
		case domain.MatchExact:
			exact = append(exact, cfg)
		case domain.MatchPrefix:
			n := len(cfg.Match.Key)
			if n > longest {
				longest = n
				prefix = prefix[:0]
			}
			if n == longest {
				prefix = append(prefix, cfg)
			}
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return prefix
}

// ConfigResolver indexes a snapshot of posting rules by transaction type so
// repeated lookups during a report only scan the relevant rules.
type ConfigResolver struct {
	byType map[string][]domain.JournalConfig
}

// NewConfigResolver builds a resolver over a fixed snapshot. Soft deleted rules are ignored.
func NewConfigResolver(configs []domain.JournalConfig) *ConfigResolver {
	byType := make(map[string][]domain.JournalConfig)
	for _, cfg := range configs {
		if cfg.DeletedAt != nil {
			continue
		}
		byType[cfg.TransactionType] = append(byType[cfg.TransactionType], cfg)
	}
	return &ConfigResolver{byType: byType}
}

// Resolve is ResolveConfigs over the snapshot.
func (r *ConfigResolver) Resolve(txType, detailKey string) []domain.JournalConfig {
	return ResolveConfigs(r.byType[txType], txType, detailKey)
}
