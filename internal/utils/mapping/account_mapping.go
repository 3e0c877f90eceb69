package mapping

import (
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/api-diengcyber/transaksi-sub000/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		StoreID:         d.StoreID,
		Code:            d.Code,
		Name:            d.Name,
		Category:        string(d.Category),
		NormalBalance:   string(d.NormalBalance),
		IsSystem:        d.IsSystem,
		ParentAccountID: NullString(d.ParentAccountID),
		Description:     NullString(d.Description),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		StoreID:         m.StoreID,
		Code:            m.Code,
		Name:            m.Name,
		Category:        domain.AccountCategory(m.Category),
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		IsSystem:        m.IsSystem,
		ParentAccountID: m.ParentAccountID.String,
		Description:     m.Description.String,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
