//go:build integration

package pgsql_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
	"github.com/api-diengcyber/transaksi-sub000/internal/repositories/database/pgsql"
	"github.com/api-diengcyber/transaksi-sub000/internal/testutil/testdb"
)

var testDB *testdb.TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testdb.NewTestDB(ctx)
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

var businessDay = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	ctx       context.Context
	repos     portsrepo.RepositoryProvider
	journals  portssvc.JournalSvcFacade
	accounts  portssvc.AccountSvcFacade
	reporting portssvc.ReportingService
}

func setupIntegrationTest(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))

	clock := func() time.Time { return businessDay }
	repos := pgsql.NewRepositoryProvider(testDB.Pool)
	return &testEnv{
		ctx:   ctx,
		repos: repos,
		journals: services.NewJournalService(repos.JournalRepo,
			services.WithJournalClock(clock),
			services.WithCodeAttempts(5)),
		accounts: services.NewAccountService(repos.AccountRepo,
			services.WithJournalConfigRepository(repos.JournalConfigRepo),
			services.WithAccountClock(clock)),
		reporting: services.NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.JournalConfigRepo),
	}
}

func parseDetails(t *testing.T, raw string) domain.Details {
	t.Helper()
	d, err := domain.ParseDetails([]byte(raw))
	require.NoError(t, err)
	return d
}

func newAccount(storeID, code string, category domain.AccountCategory) domain.Account {
	return domain.Account{
		AccountID:     uuid.NewString(),
		StoreID:       storeID,
		Code:          code,
		Name:          "Account " + code,
		Category:      category,
		NormalBalance: domain.DefaultNormalBalance(category),
		AuditFields: domain.AuditFields{
			CreatedAt: businessDay, CreatedBy: "user-1",
			LastUpdatedAt: businessDay, LastUpdatedBy: "user-1",
		},
	}
}

func dtoCategory(c domain.AccountCategory) dto.UpdateAccountRequest {
	return dto.UpdateAccountRequest{Category: &c}
}

// =============================================================================
// Accounts
// =============================================================================

func TestAccountRepository_SaveFindDelete(t *testing.T) {
	env := setupIntegrationTest(t)
	repo := env.repos.AccountRepo

	parent := newAccount("store-1", "1000", domain.Asset)
	require.NoError(t, repo.SaveAccount(env.ctx, parent))
	child := newAccount("store-1", "1100", domain.Asset)
	child.ParentAccountID = parent.AccountID
	require.NoError(t, repo.SaveAccount(env.ctx, child))

	found, err := repo.FindAccountByCode(env.ctx, "store-1", "1100")
	require.NoError(t, err)
	assert.Equal(t, child.AccountID, found.AccountID)
	assert.Equal(t, parent.AccountID, found.ParentAccountID)

	n, err := repo.CountChildren(env.ctx, "store-1", parent.AccountID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.FindAccountByID(env.ctx, "store-2", parent.AccountID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.DeleteAccount(env.ctx, "store-1", child.AccountID))
	_, err = repo.FindAccountByID(env.ctx, "store-1", child.AccountID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountRepository_DuplicateCode(t *testing.T) {
	env := setupIntegrationTest(t)
	repo := env.repos.AccountRepo

	require.NoError(t, repo.SaveAccount(env.ctx, newAccount("store-1", "1000", domain.Asset)))
	err := repo.SaveAccount(env.ctx, newAccount("store-1", "1000", domain.Asset))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// same code in another store is fine
	require.NoError(t, repo.SaveAccount(env.ctx, newAccount("store-2", "1000", domain.Asset)))
}

func TestAccountService_CategoryPropagatesThroughTree(t *testing.T) {
	env := setupIntegrationTest(t)
	repo := env.repos.AccountRepo

	root := newAccount("store-1", "1000", domain.Asset)
	mid := newAccount("store-1", "1100", domain.Asset)
	mid.ParentAccountID = root.AccountID
	leaf := newAccount("store-1", "1110", domain.Asset)
	leaf.ParentAccountID = mid.AccountID
	for _, a := range []domain.Account{root, mid, leaf} {
		require.NoError(t, repo.SaveAccount(env.ctx, a))
	}

	category := domain.Expense
	_, err := env.accounts.UpdateAccount(env.ctx, "store-1", root.AccountID, dtoCategory(category), "user-2")
	require.NoError(t, err)

	for _, id := range []string{mid.AccountID, leaf.AccountID} {
		got, err := repo.FindAccountByID(env.ctx, "store-1", id)
		require.NoError(t, err)
		assert.Equal(t, domain.Expense, got.Category)
		assert.Equal(t, "user-2", got.LastUpdatedBy)
	}
}

// =============================================================================
// Journals
// =============================================================================

func TestJournalService_SequentialCodesAndDetailOrder(t *testing.T) {
	env := setupIntegrationTest(t)
	details := parseDetails(t, `{"grand_total":"20000","items":[{"product_name":"Tea","qty":"2"},{"product_name":"Rice","qty":"1"}]}`)

	first, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-1", nil)
	require.NoError(t, err)
	second, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-1", nil)
	require.NoError(t, err)
	buy, err := env.journals.CreateJournal(env.ctx, domain.TxBuy, details, "user-1", "store-1", nil)
	require.NoError(t, err)

	assert.Equal(t, "SALE-store-1-20250304-0001", first.Code)
	assert.Equal(t, "SALE-store-1-20250304-0002", second.Code)
	assert.Equal(t, "BUY-store-1-20250304-0001", buy.Code)

	stored, err := env.journals.GetJournalByCode(env.ctx, "store-1", first.Code)
	require.NoError(t, err)
	want := details.Flatten()
	require.Len(t, stored.Details, len(want))
	for i, kv := range want {
		assert.Equal(t, kv.Key, stored.Details[i].Key)
		assert.Equal(t, kv.Value, stored.Details[i].Value)
	}
	assert.Equal(t, domain.TxSale, stored.TransactionType)
	assert.Equal(t, "store-1", stored.StoreID)
}

func TestJournalService_StoreIsolation(t *testing.T) {
	env := setupIntegrationTest(t)
	details := parseDetails(t, `{"grand_total":"100"}`)

	_, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-1", nil)
	require.NoError(t, err)
	other, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-10", nil)
	require.NoError(t, err)
	assert.Equal(t, "SALE-store-10-20250304-0001", other.Code)

	sales, err := env.journals.FindAllByType(env.ctx, "store-1", domain.TxSale)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "SALE-store-1-20250304-0001", sales[0].Code)

	all, err := env.journals.FindAllByType(env.ctx, "store-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = env.journals.GetJournalByCode(env.ctx, "store-1", other.Code)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStoreScope_NameSharingAPrefix(t *testing.T) {
	env := setupIntegrationTest(t)

	_, err := env.accounts.InstallDefaults(env.ctx, "store", "user-1")
	require.NoError(t, err)
	_, err = env.accounts.InstallDefaults(env.ctx, "store-1", "user-1")
	require.NoError(t, err)

	own, err := env.journals.CreateJournal(env.ctx, domain.TxSale, parseDetails(t, `{"grand_total":"100"}`), "user-1", "store", nil)
	require.NoError(t, err)
	assert.Equal(t, "SALE-store-20250304-0001", own.Code)
	_, err = env.journals.CreateJournal(env.ctx, domain.TxSale, parseDetails(t, `{"grand_total":"900"}`), "user-1", "store-1", nil)
	require.NoError(t, err)

	sales, err := env.journals.FindAllByType(env.ctx, "store", domain.TxSale)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, own.Code, sales[0].Code)

	all, err := env.journals.FindAllByType(env.ctx, "store", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	stats, err := env.repos.JournalRepo.CountDetailKeys(env.ctx, "store")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].Occurrences)

	rows, err := env.reporting.GetFinancialReport(env.ctx, "store", businessDay, businessDay)
	require.NoError(t, err)
	for _, r := range rows {
		if r.Code == "1100" {
			assert.True(t, decimal.NewFromInt(100).Equal(r.Debit), r.Debit.String())
		}
	}
}

func TestJournalService_OverlongInputIsRejectedOrCut(t *testing.T) {
	env := setupIntegrationTest(t)

	long := strings.Repeat("k", 300)
	j, err := env.journals.CreateJournal(env.ctx, domain.TxSale, parseDetails(t, `{"`+long+`":"1"}`), "user-1", "store-1", nil)
	require.NoError(t, err)
	stored, err := env.journals.GetJournalByCode(env.ctx, "store-1", j.Code)
	require.NoError(t, err)
	require.Len(t, stored.Details, 1)
	assert.Len(t, stored.Details[0].Key, domain.MaxDetailKeyLength)

	_, err = env.journals.CreateJournal(env.ctx, domain.TxSale, parseDetails(t, `{"grand_total":"1"}`),
		"user-1", strings.Repeat("s", domain.MaxStoreIDLength+1), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.journals.CreateJournal(env.ctx, strings.Repeat("T", domain.MaxTransactionTypeLength+1),
		parseDetails(t, `{"grand_total":"1"}`), "user-1", "store-1", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalService_ConcurrentCreationYieldsUniqueCodes(t *testing.T) {
	env := setupIntegrationTest(t)
	details := parseDetails(t, `{"grand_total":"1"}`)

	const workers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[string]bool{}
		errs  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-1", nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			codes[j.Code] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, codes, workers)
	for i := 1; i <= workers; i++ {
		assert.True(t, codes[fmt.Sprintf("SALE-store-1-20250304-%04d", i)])
	}
}

func TestJournalService_JoinsCallerTransaction(t *testing.T) {
	env := setupIntegrationTest(t)
	repo := env.repos.JournalRepo

	tx, err := repo.Begin(env.ctx)
	require.NoError(t, err)
	j, err := env.journals.CreateJournal(env.ctx, domain.TxSale, parseDetails(t, `{"grand_total":"5"}`), "user-1", "store-1", tx)
	require.NoError(t, err)
	require.NoError(t, repo.Rollback(env.ctx, tx))

	_, err = repo.FindJournalByCode(env.ctx, j.Code)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestJournalService_StockAdjustment(t *testing.T) {
	env := setupIntegrationTest(t)

	j, err := env.journals.ProcessStockAdjustment(env.ctx, []domain.StockAdjustment{
		{ProductUUID: "p-1", UnitUUID: "u-1", OldQty: decimal.NewFromInt(10), NewQty: decimal.NewFromInt(13)},
		{ProductUUID: "p-2", UnitUUID: "u-1", OldQty: decimal.NewFromInt(4), NewQty: decimal.NewFromInt(4)},
	}, "user-1", nil, "store-1")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, "STOCK_ADJUSTMENT-store-1-20250304-0001", j.Code)

	found, err := env.journals.FindAllByType(env.ctx, "store-1", domain.TxStockAdjustment)
	require.NoError(t, err)
	require.Len(t, found, 1)
	keys := make([]string, len(found[0].Details))
	for i, d := range found[0].Details {
		keys[i] = d.Key
	}
	assert.Contains(t, keys, services.StockQtyPlusKey+"#0")
}

func TestJournalRepository_MarkVerified(t *testing.T) {
	env := setupIntegrationTest(t)
	repo := env.repos.JournalRepo

	err := repo.MarkVerified(env.ctx, "SALE-store-1-20250304-0099", "user-1", businessDay)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	j, err := env.journals.CreateJournal(env.ctx, domain.TxSale, parseDetails(t, `{"grand_total":"5"}`), "user-1", "store-1", nil)
	require.NoError(t, err)
	// journals are verified by their creator on insert
	require.NoError(t, repo.MarkVerified(env.ctx, j.Code, "user-2", businessDay.Add(time.Hour)))

	stored, err := repo.FindJournalByCode(env.ctx, j.Code)
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.VerifiedBy)
}

func TestJournalRepository_CountDetailKeys(t *testing.T) {
	env := setupIntegrationTest(t)
	details := parseDetails(t, `{"grand_total":"10","tax":"1"}`)
	for i := 0; i < 2; i++ {
		_, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-1", nil)
		require.NoError(t, err)
	}
	_, err := env.journals.CreateJournal(env.ctx, domain.TxSale, details, "user-1", "store-10", nil)
	require.NoError(t, err)

	stats, err := env.repos.JournalRepo.CountDetailKeys(env.ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, domain.DetailKeyStat{TransactionType: domain.TxSale, Key: "grand_total", Occurrences: 2}, stats[0])
	assert.Equal(t, domain.DetailKeyStat{TransactionType: domain.TxSale, Key: "tax", Occurrences: 2}, stats[1])
}

// =============================================================================
// Defaults and reporting
// =============================================================================

func TestInstallDefaultsSaleAndReport(t *testing.T) {
	env := setupIntegrationTest(t)

	res, err := env.accounts.InstallDefaults(env.ctx, "store-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 14, res.AccountsCreated)
	assert.Equal(t, 10, res.ConfigsCreated)

	again, err := env.accounts.InstallDefaults(env.ctx, "store-1", "user-1")
	require.NoError(t, err)
	assert.Zero(t, again.AccountsCreated)
	assert.Zero(t, again.ConfigsCreated)

	_, err = env.journals.CreateJournal(env.ctx, domain.TxSale,
		parseDetails(t, `{"grand_total":"20000.50","tax":"1500","customer":"walk-in"}`), "user-1", "store-1", nil)
	require.NoError(t, err)

	rows, err := env.reporting.GetFinancialReport(env.ctx, "store-1", businessDay, businessDay)
	require.NoError(t, err)
	byCode := make(map[string]domain.FinancialReportRow, len(rows))
	for _, r := range rows {
		byCode[r.Code] = r
	}
	require.Len(t, byCode, 14)

	assert.True(t, decimal.RequireFromString("20000.5").Equal(byCode["1100"].Debit))
	assert.True(t, decimal.RequireFromString("20000.5").Equal(byCode["1100"].Balance))
	assert.True(t, decimal.RequireFromString("20000.5").Equal(byCode["4100"].Credit))
	assert.True(t, decimal.RequireFromString("20000.5").Equal(byCode["4100"].Balance))
	assert.True(t, decimal.NewFromInt(1500).Equal(byCode["2200"].Credit))
	assert.True(t, byCode["3100"].Balance.IsZero())

	// the day after holds nothing
	next := businessDay.AddDate(0, 0, 1)
	rows, err = env.reporting.GetFinancialReport(env.ctx, "store-1", next, next)
	require.NoError(t, err)
	for _, r := range rows {
		assert.True(t, r.Debit.IsZero() && r.Credit.IsZero(), r.Code)
	}
}
