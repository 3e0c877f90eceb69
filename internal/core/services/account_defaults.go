package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
)

type seedAccount struct {
	Code       string
	Name       string
	Category   domain.AccountCategory
	ParentCode string
}

type seedRule struct {
	TransactionType string
	Match           domain.KeyMatch
	AccountCode     string
	Position        domain.Position
}

// Parents are listed before their children.
var defaultAccounts = []seedAccount{
	{Code: "1000", Name: "Assets", Category: domain.Asset},
	{Code: "1100", Name: "Cash", Category: domain.Asset, ParentCode: "1000"},
	{Code: "1200", Name: "Accounts Receivable", Category: domain.Asset, ParentCode: "1000"},
	{Code: "1300", Name: "Inventory", Category: domain.Asset, ParentCode: "1000"},
	{Code: "2000", Name: "Liabilities", Category: domain.Liability},
	{Code: "2100", Name: "Accounts Payable", Category: domain.Liability, ParentCode: "2000"},
	{Code: "2200", Name: "Tax Payable", Category: domain.Liability, ParentCode: "2000"},
	{Code: "3000", Name: "Equity", Category: domain.Equity},
	{Code: "3100", Name: "Owner's Capital", Category: domain.Equity, ParentCode: "3000"},
	{Code: "4000", Name: "Revenue", Category: domain.Revenue},
	{Code: "4100", Name: "Sales Revenue", Category: domain.Revenue, ParentCode: "4000"},
	{Code: "5000", Name: "Expenses", Category: domain.Expense},
	{Code: "5100", Name: "Cost of Goods Sold", Category: domain.Expense, ParentCode: "5000"},
	{Code: "5200", Name: "Inventory Adjustment", Category: domain.Expense, ParentCode: "5000"},
}

var defaultRules = []seedRule{
	{domain.TxSale, domain.ExactKey("grand_total"), "1100", domain.Debit},
	{domain.TxSale, domain.ExactKey("grand_total"), "4100", domain.Credit},
	{domain.TxSale, domain.ExactKey("tax"), "2200", domain.Credit},
	{domain.TxBuy, domain.ExactKey("grand_total"), "1300", domain.Debit},
	{domain.TxBuy, domain.ExactKey("grand_total"), "1100", domain.Credit},
	{domain.TxBuy, domain.ExactKey("nominal_ar"), "2100", domain.Credit},
	{domain.TxStockAdjustment, domain.PrefixKey(StockQtyPlusKey + "#"), "1300", domain.Debit},
	{domain.TxStockAdjustment, domain.PrefixKey(StockQtyPlusKey + "#"), "5200", domain.Credit},
	{domain.TxStockAdjustment, domain.PrefixKey(StockQtyMinKey + "#"), "5200", domain.Debit},
	{domain.TxStockAdjustment, domain.PrefixKey(StockQtyMinKey + "#"), "1300", domain.Credit},
}

func ruleSignature(txType string, m domain.KeyMatch, accountID string, pos domain.Position) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", txType, m.Kind, m.Key, accountID, pos)
}

// InstallDefaults seeds the system chart of accounts and the default posting
// rules of a store. Entries that already exist are left alone, so the call
// can be repeated.
func (s *accountService) InstallDefaults(ctx context.Context, storeID, userID string) (*dto.InstallDefaultsResponse, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}

	release, err := s.obtainStoreLock(ctx, "install-defaults:"+storeID)
	if err != nil {
		return nil, err
	}
	defer release()

	existingRules := map[string]bool{}
	if s.configRepo != nil {
		configs, err := s.configRepo.ListConfigsByStore(ctx, storeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing journal configs: %w", err)
		}
		for _, c := range configs {
			existingRules[ruleSignature(c.TransactionType, c.Match, c.AccountID, c.Position)] = true
		}
	}

	res := &dto.InstallDefaultsResponse{}
	err = withTx(ctx, s.accountRepo, nil, func(tx pgx.Tx) error {
		now := s.now()
		audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

		idsByCode := make(map[string]string, len(defaultAccounts))
		for _, seed := range defaultAccounts {
			existing, err := s.accountRepo.FindAccountByCodeTx(ctx, tx, storeID, seed.Code)
			if err == nil {
				idsByCode[seed.Code] = existing.AccountID
				continue
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("failed to look up account %s: %w", seed.Code, err)
			}
			account := domain.Account{
				AccountID:       uuid.NewString(),
				StoreID:         storeID,
				Code:            seed.Code,
				Name:            seed.Name,
				Category:        seed.Category,
				NormalBalance:   domain.DefaultNormalBalance(seed.Category),
				IsSystem:        true,
				ParentAccountID: idsByCode[seed.ParentCode],
				AuditFields:     audit,
			}
			if err := s.accountRepo.SaveAccountTx(ctx, tx, account); err != nil {
				return fmt.Errorf("failed to save account %s: %w", seed.Code, err)
			}
			idsByCode[seed.Code] = account.AccountID
			res.AccountsCreated++
		}

		if s.configRepo == nil {
			return nil
		}
		for _, rule := range defaultRules {
			accountID := idsByCode[rule.AccountCode]
			if existingRules[ruleSignature(rule.TransactionType, rule.Match, accountID, rule.Position)] {
				continue
			}
			cfg := domain.JournalConfig{
				ConfigID:        uuid.NewString(),
				StoreID:         storeID,
				TransactionType: rule.TransactionType,
				Match:           rule.Match,
				AccountID:       accountID,
				Position:        rule.Position,
				AuditFields:     audit,
			}
			if err := s.configRepo.SaveConfigTx(ctx, tx, cfg); err != nil {
				return fmt.Errorf("failed to save journal config: %w", err)
			}
			res.ConfigsCreated++
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to install default accounts", slog.String("store_id", storeID))
		return nil, err
	}

	s.LogInfo(ctx, "Default accounts installed",
		slog.String("store_id", storeID),
		slog.Int("accounts_created", res.AccountsCreated),
		slog.Int("configs_created", res.ConfigsCreated))
	return res, nil
}

// obtainStoreLock takes the named lock when a locker is configured. A busy
// lock is reported to the caller; any other locker failure only downgrades
// the call to running unlocked.
func (s *accountService) obtainStoreLock(ctx context.Context, key string) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}
	lock, err := s.locker.Obtain(ctx, key)
	if errors.Is(err, portssvc.ErrLockNotObtained) {
		return nil, apperrors.NewAppError(apperrors.ErrTransient, "installation already in progress for this store", err)
	}
	if err != nil {
		s.LogError(ctx, err, "Could not obtain lock, proceeding without it", slog.String("key", key))
		return noop, nil
	}
	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.LogError(ctx, err, "Failed to release lock", slog.String("key", key))
		}
	}, nil
}
