package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	configRepo  portsrepo.JournalConfigRepositoryFacade
	locker      portssvc.Locker
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithJournalConfigRepository lets InstallDefaults seed posting rules.
func WithJournalConfigRepository(repo portsrepo.JournalConfigRepositoryFacade) AccountServiceOption {
	return func(s *accountService) {
		s.configRepo = repo
	}
}

// WithLocker serializes default installation per store.
func WithLocker(locker portssvc.Locker) AccountServiceOption {
	return func(s *accountService) {
		s.locker = locker
	}
}

// WithAccountClock overrides the clock used for audit stamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryWithTx, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, storeID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, apperrors.NewValidationError("account code is required")
	}
	if !req.Category.Valid() {
		return nil, apperrors.NewValidationError("invalid category %q", req.Category)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, storeID, code); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("account code %q already exists", code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("store_id", storeID), slog.String("code", code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	now := s.now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		StoreID:       storeID,
		Code:          code,
		Name:          req.Name,
		Category:      req.Category,
		NormalBalance: req.NormalBalance,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, storeID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parent account %s does not exist", *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to load parent account: %w", err)
		}
		account.ParentAccountID = parent.AccountID
		account.Category = parent.Category
	}
	if account.NormalBalance == "" {
		account.NormalBalance = domain.DefaultNormalBalance(account.Category)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewValidationError("account code %q already exists", code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("store_id", storeID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, storeID, accountID string) (*domain.Account, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, storeID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, storeID string) ([]domain.Account, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, storeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the patch in one transaction. An account with a parent
// always carries the parent's category, and a category change is pushed down
// through every descendant before the transaction commits.
func (s *accountService) UpdateAccount(ctx context.Context, storeID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}

	var updated *domain.Account
	err := withTx(ctx, s.accountRepo, nil, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDTx(ctx, tx, storeID, accountID)
		if err != nil {
			return err
		}
		oldCategory := account.Category

		if err := s.applyAccountPatch(ctx, tx, account, req); err != nil {
			return err
		}

		if account.ParentAccountID != "" {
			parent, err := s.accountRepo.FindAccountByIDTx(ctx, tx, storeID, account.ParentAccountID)
			if err != nil {
				return fmt.Errorf("failed to load parent account: %w", err)
			}
			account.Category = parent.Category
		}

		now := s.now()
		account.LastUpdatedAt = now
		account.LastUpdatedBy = userID
		if err := s.accountRepo.UpdateAccountTx(ctx, tx, *account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewValidationError("account code %q already exists", account.Code)
			}
			return fmt.Errorf("failed to update account: %w", err)
		}

		if account.Category != oldCategory {
			if err := s.propagateCategory(ctx, tx, storeID, account.AccountID, account.Category, userID, now); err != nil {
				return err
			}
		}
		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account",
				slog.String("account_id", accountID),
				slog.String("store_id", storeID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return updated, nil
}

func (s *accountService) applyAccountPatch(ctx context.Context, tx pgx.Tx, account *domain.Account, req dto.UpdateAccountRequest) error {
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return apperrors.NewValidationError("account code must not be empty")
		}
		if code != account.Code {
			other, err := s.accountRepo.FindAccountByCodeTx(ctx, tx, account.StoreID, code)
			if err == nil && other != nil && other.AccountID != account.AccountID {
				return apperrors.NewValidationError("account code %q already exists", code)
			}
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("failed to check account code: %w", err)
			}
		}
		account.Code = code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.NormalBalance != nil {
		if !req.NormalBalance.Valid() {
			return apperrors.NewValidationError("invalid normal balance %q", *req.NormalBalance)
		}
		account.NormalBalance = *req.NormalBalance
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return apperrors.NewValidationError("invalid category %q", *req.Category)
		}
		account.Category = *req.Category
	}
	if req.ParentAccountID != nil {
		parentID := strings.TrimSpace(*req.ParentAccountID)
		if parentID == "" {
			account.ParentAccountID = ""
			return nil
		}
		if parentID == account.AccountID {
			return apperrors.NewValidationError("account cannot be its own parent")
		}
		if err := s.ensureNoCycle(ctx, tx, account.StoreID, account.AccountID, parentID); err != nil {
			return err
		}
		account.ParentAccountID = parentID
	}
	return nil
}

// ensureNoCycle walks up from parentID and fails if it reaches accountID.
func (s *accountService) ensureNoCycle(ctx context.Context, tx pgx.Tx, storeID, accountID, parentID string) error {
	seen := map[string]bool{}
	for current := parentID; current != ""; {
		if current == accountID {
			return apperrors.NewValidationError("parent %s would create a cycle", parentID)
		}
		if seen[current] {
			// pre-existing loop above the new parent that does not involve this account
			return nil
		}
		seen[current] = true

		node, err := s.accountRepo.FindAccountByIDTx(ctx, tx, storeID, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) && current == parentID {
				return apperrors.NewValidationError("parent account %s does not exist", parentID)
			}
			return err
		}
		current = node.ParentAccountID
	}
	return nil
}

// propagateCategory sets category on every descendant of rootID.
func (s *accountService) propagateCategory(ctx context.Context, tx pgx.Tx, storeID, rootID string, category domain.AccountCategory, userID string, now time.Time) error {
	visited := map[string]bool{rootID: true}
	pending := []string{rootID}
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]

		if err := s.accountRepo.UpdateChildrenCategoryTx(ctx, tx, storeID, id, category, userID, now); err != nil {
			return fmt.Errorf("failed to propagate category to children of %s: %w", id, err)
		}
		children, err := s.accountRepo.ListChildIDsTx(ctx, tx, storeID, id)
		if err != nil {
			return fmt.Errorf("failed to list children of %s: %w", id, err)
		}
		for _, child := range children {
			if !visited[child] {
				visited[child] = true
				pending = append(pending, child)
			}
		}
	}
	s.LogDebug(ctx, "Category propagated",
		slog.String("account_id", rootID),
		slog.String("category", string(category)),
		slog.Int("descendants", len(visited)-1))
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, storeID, accountID string) error {
	account, err := s.GetAccountByID(ctx, storeID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return apperrors.NewValidationError("system account %s cannot be deleted", account.Code)
	}
	children, err := s.accountRepo.CountChildren(ctx, storeID, accountID)
	if err != nil {
		return fmt.Errorf("failed to count child accounts: %w", err)
	}
	if children > 0 {
		return apperrors.NewValidationError("account %s still has %d child accounts", account.Code, children)
	}
	if err := s.accountRepo.DeleteAccount(ctx, storeID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}
