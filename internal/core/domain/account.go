package domain

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Valid reports whether c is one of the five known categories.
func (c AccountCategory) Valid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance is conventionally positive.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

func (n NormalBalance) Valid() bool {
	return n == NormalDebit || n == NormalCredit
}

// DefaultNormalBalance returns the conventional normal side for a category.
func DefaultNormalBalance(c AccountCategory) NormalBalance {
	if c == Asset || c == Expense {
		return NormalDebit
	}
	return NormalCredit
}

// Account is a chart-of-accounts entry belonging to a single store.
type Account struct {
	AccountID       string          `json:"uuid"`
	StoreID         string          `json:"storeUuid"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Category        AccountCategory `json:"category"`
	NormalBalance   NormalBalance   `json:"normalBalance"`
	IsSystem        bool            `json:"isSystem"`
	ParentAccountID string          `json:"parentUuid,omitempty"` // empty for root accounts
	Description     string          `json:"description,omitempty"`
	AuditFields
}
