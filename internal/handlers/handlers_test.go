package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
	"github.com/api-diengcyber/transaksi-sub000/internal/handlers"
	"github.com/api-diengcyber/transaksi-sub000/internal/middleware"
	"github.com/api-diengcyber/transaksi-sub000/internal/platform/config"
)

const (
	testSecret  = "test-secret-key-that-is-long-enough"
	testIssuer  = "transaksi-test"
	testUserID  = "user-1"
	testStoreID = "store-1"
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	journalSvc   *MockJournalService
	accountSvc   *MockAccountService
	configSvc    *MockJournalConfigService
	reportingSvc *MockReportingService
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.journalSvc = new(MockJournalService)
	suite.accountSvc = new(MockAccountService)
	suite.configSvc = new(MockJournalConfigService)
	suite.reportingSvc = new(MockReportingService)

	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:       suite.accountSvc,
		Journal:       suite.journalSvc,
		JournalConfig: suite.configSvc,
		Reporting:     suite.reportingSvc,
	}, nil)
}

func (suite *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	req.Header.Set(middleware.StoreHeader, testStoreID)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	req.Header.Set(middleware.StoreHeader, testStoreID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestMissingStoreHeaderIsBadRequest() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateSale_Success() {
	code := "SALE-store-1-20250304-0001"
	journal := &domain.Journal{
		JournalID:       "j-1",
		Code:            code,
		TransactionType: domain.TxSale,
		Details: []domain.JournalDetail{
			{DetailID: "d-1", JournalCode: code, Key: "grand_total", Value: "15000"},
			{DetailID: "d-2", JournalCode: code, Key: "product_name#0", Value: "Tea"},
		},
	}
	suite.journalSvc.On("CreateJournal", mock.Anything, domain.TxSale,
		mock.MatchedBy(func(d domain.Details) bool {
			return len(d) == 2 && d[0].Key == "grand_total" && d[1].Key == domain.ItemsKey
		}),
		testUserID, testStoreID, nil,
	).Return(journal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal/sale",
		`{"details":{"items":[{"productName":"Tea"}],"grand_total":15000}}`)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.CreateJournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(code, res.Journal.Code)
	suite.Len(res.Details, 2)
	suite.journalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateSale_DetailsMustBeObject() {
	w := suite.do(http.MethodPost, "/api/v1/journal/sale", `{"details":[1,2]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journalSvc.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSale_ContentionIsServiceUnavailable() {
	suite.journalSvc.On("CreateJournal", mock.Anything, domain.TxSale, mock.Anything, testUserID, testStoreID, nil).
		Return(nil, apperrors.NewAppError(apperrors.ErrTransient, "deadlock", nil))

	w := suite.do(http.MethodPost, "/api/v1/journal/sale", `{"details":{"grand_total":1}}`)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestStockAdjustment_NoChanges() {
	suite.journalSvc.On("ProcessStockAdjustment", mock.Anything,
		mock.MatchedBy(func(a []domain.StockAdjustment) bool {
			return len(a) == 1 && a[0].ProductUUID == "p-1" && a[0].Diff().IsZero()
		}),
		testUserID, nil, testStoreID,
	).Return(nil, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal/stock-adjustment",
		`{"adjustments":[{"productUuid":"p-1","unitUuid":"u-1","oldQty":"5","newQty":5}]}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "No stock changes")
}

func (suite *HandlerTestSuite) TestStockAdjustment_Created() {
	journal := &domain.Journal{Code: "STOCK_ADJUSTMENT-store-1-20250304-0001"}
	suite.journalSvc.On("ProcessStockAdjustment", mock.Anything, mock.Anything, testUserID, nil, testStoreID).Return(journal, nil)

	w := suite.do(http.MethodPost, "/api/v1/journal/stock-adjustment",
		`{"adjustments":[{"productUuid":"p-1","oldQty":"1","newQty":"4"}]}`)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestStockAdjustment_RequiresItems() {
	w := suite.do(http.MethodPost, "/api/v1/journal/stock-adjustment", `{"adjustments":[]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListJournals_ByTypeAndAll() {
	suite.journalSvc.On("FindAllByType", mock.Anything, testStoreID, domain.TxSale).
		Return([]domain.Journal{{Code: "SALE-store-1-20250304-0001"}}, nil).Once()
	suite.journalSvc.On("FindAllByType", mock.Anything, testStoreID, "").
		Return([]domain.Journal{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal/report/SALE", "")
	suite.Equal(http.StatusOK, w.Code)
	var res []dto.JournalWithDetailsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res, 1)

	w = suite.do(http.MethodGet, "/api/v1/journal/report", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
	suite.journalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetJournal_NotFound() {
	suite.journalSvc.On("GetJournalByCode", mock.Anything, testStoreID, "SALE-store-9-20250304-0001").
		Return(nil, apperrors.NewNotFoundError("journal", "SALE-store-9-20250304-0001"))

	w := suite.do(http.MethodGet, "/api/v1/journal/SALE-store-9-20250304-0001", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestVerifyJournal_Success() {
	at := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	code := "SALE-store-1-20250304-0001"
	suite.journalSvc.On("VerifyJournal", mock.Anything, testStoreID, code, testUserID).
		Return(&domain.Journal{Code: code, VerifiedBy: testUserID, VerifiedAt: &at}, nil)

	w := suite.do(http.MethodPost, "/api/v1/journal/"+code+"/verify", "")

	suite.Equal(http.StatusOK, w.Code)
	var res dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(testUserID, res.VerifiedBy)
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingError() {
	w := suite.do(http.MethodPost, "/api/v1/account", `{"code":"1100","category":"ASSET"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1100", Name: "Cash", Category: domain.Asset}
	suite.accountSvc.On("CreateAccount", mock.Anything, testStoreID, req, testUserID).
		Return(&domain.Account{AccountID: "acc-1", Code: "1100", Name: "Cash", Category: domain.Asset, NormalBalance: domain.NormalDebit}, nil)

	w := suite.do(http.MethodPost, "/api/v1/account", `{"code":"1100","name":"Cash","category":"ASSET"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("acc-1", res.AccountID)
	suite.Equal(domain.NormalDebit, res.NormalBalance)
}

func (suite *HandlerTestSuite) TestUpdateAccount_ValidationFromService() {
	suite.accountSvc.On("UpdateAccount", mock.Anything, testStoreID, "acc-1", mock.AnythingOfType("dto.UpdateAccountRequest"), testUserID).
		Return(nil, apperrors.NewValidationError("parent c would create a cycle"))

	w := suite.do(http.MethodPut, "/api/v1/account/acc-1", `{"parentUuid":"c"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "cycle")
}

func (suite *HandlerTestSuite) TestDeleteAccount_NoContent() {
	suite.accountSvc.On("DeleteAccount", mock.Anything, testStoreID, "acc-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/account/acc-1", "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.accountSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestInstallDefaults_Busy() {
	suite.accountSvc.On("InstallDefaults", mock.Anything, testStoreID, testUserID).
		Return(nil, apperrors.NewAppError(apperrors.ErrTransient, "installation already in progress", nil))

	w := suite.do(http.MethodPost, "/api/v1/account/install-defaults", "")

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestFinancialReport_Success() {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.reportingSvc.On("GetFinancialReport", mock.Anything, testStoreID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(start) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(end) }),
	).Return([]domain.FinancialReportRow{{
		AccountID: "cash", Code: "1100", NormalBalance: domain.NormalDebit,
		Debit: decimal.NewFromInt(100), Credit: decimal.Zero, Balance: decimal.NewFromInt(100),
	}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/account/report/financial?startDate=2025-03-01&endDate=2025-03-31", "")

	suite.Equal(http.StatusOK, w.Code)
	var res []dto.FinancialReportRowResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Require().Len(res, 1)
	suite.True(res[0].Balance.Equal(decimal.NewFromInt(100)))
	suite.reportingSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestFinancialReport_BadDates() {
	w := suite.do(http.MethodGet, "/api/v1/account/report/financial?startDate=03/01/2025&endDate=2025-03-31", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/account/report/financial", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.reportingSvc.AssertNotCalled(suite.T(), "GetFinancialReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateConfig_AccountNotFound() {
	suite.configSvc.On("CreateConfig", mock.Anything, testStoreID, mock.AnythingOfType("dto.CreateJournalConfigRequest"), testUserID).
		Return(nil, apperrors.NewNotFoundError("account", "ghost"))

	w := suite.do(http.MethodPost, "/api/v1/journal-config",
		`{"transactionType":"SALE","detailKey":"tax","accountUuid":"ghost","position":"CREDIT"}`)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDiscovery_CountsUnmapped() {
	suite.configSvc.On("DiscoverDetailKeys", mock.Anything, testStoreID).Return([]domain.DetailKeyStat{
		{TransactionType: domain.TxSale, Key: "grand_total", Occurrences: 3, Mapped: true},
		{TransactionType: domain.TxSale, Key: "product_name#", Occurrences: 2},
		{TransactionType: domain.TxBuy, Key: "nominal_ar", Occurrences: 1},
	}, nil)

	w := suite.do(http.MethodGet, "/api/v1/journal-config/discovery", "")

	suite.Equal(http.StatusOK, w.Code)
	var res dto.DiscoveryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(2, res.Unmapped)
	suite.Len(res.Keys, 3)
}

func (suite *HandlerTestSuite) TestDeleteConfig_InternalError() {
	suite.configSvc.On("DeleteConfig", mock.Anything, testStoreID, "cfg-1", testUserID).Return(errors.New("db down"))

	w := suite.do(http.MethodDelete, "/api/v1/journal-config/cfg-1", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "db down")
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
