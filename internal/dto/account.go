package dto

import (
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string                 `json:"code" binding:"required,max=50"`
	Name            string                 `json:"name" binding:"required,max=255"`
	Category        domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance   domain.NormalBalance   `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"` // defaults from category
	ParentAccountID *string                `json:"parentUuid"`                                         // Optional, use pointer for nullability
	Description     string                 `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// An empty parentUuid detaches the account from its parent.
type UpdateAccountRequest struct {
	Code            *string                 `json:"code" binding:"omitempty,max=50"`
	Name            *string                 `json:"name" binding:"omitempty,max=255"`
	Category        *domain.AccountCategory `json:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance   *domain.NormalBalance   `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"`
	ParentAccountID *string                 `json:"parentUuid"`
	Description     *string                 `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                 `json:"uuid"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Category        domain.AccountCategory `json:"category"`
	NormalBalance   domain.NormalBalance   `json:"normalBalance"`
	IsSystem        bool                   `json:"isSystem"`
	ParentAccountID string                 `json:"parentUuid"` // Note: Empty string if null in DB
	Description     string                 `json:"description"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		Category:        acc.Category,
		NormalBalance:   acc.NormalBalance,
		IsSystem:        acc.IsSystem,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// InstallDefaultsResponse reports what a default chart installation added.
type InstallDefaultsResponse struct {
	AccountsCreated int `json:"accountsCreated"`
	ConfigsCreated  int `json:"configsCreated"`
}
