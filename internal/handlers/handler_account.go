package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
	"github.com/api-diengcyber/transaksi-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// accountHandler handles HTTP requests related to accounts and their report.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	reportingService portssvc.ReportingService
	loc              *time.Location
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, rs portssvc.ReportingService, loc *time.Location) *accountHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &accountHandler{accountService: as, reportingService: rs, loc: loc}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, reportingService portssvc.ReportingService, loc *time.Location) {
	h := newAccountHandler(accountService, reportingService, loc)

	accounts := rg.Group("/account")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/install-defaults", h.installDefaults)
		accounts.GET("/report/financial", h.financialReport)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the store's chart. A child account takes its parent's category.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /account [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), storeID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the store's chart of accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /account [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /account/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), storeID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account. A category change is applied to every descendant.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /account/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), storeID, c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes a non-system account that has no children
// @Tags accounts
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "System account or account with children"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security BearerAuth
// @Router /account/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), storeID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// installDefaults godoc
// @Summary Install the default chart of accounts
// @Description Seeds the system accounts and default posting rules. Existing entries are kept, so the call is repeatable.
// @Tags accounts
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Success 200 {object} dto.InstallDefaultsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Installation already running for this store"
// @Failure 500 {object} map[string]string "Failed to install defaults"
// @Security BearerAuth
// @Router /account/install-defaults [post]
func (h *accountHandler) installDefaults(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	res, err := h.accountService.InstallDefaults(c.Request.Context(), storeID, userID)
	if err != nil {
		respondError(c, err, "Failed to install defaults")
		return
	}

	logger.Info("Default chart installed",
		slog.Int("accounts_created", res.AccountsCreated),
		slog.Int("configs_created", res.ConfigsCreated))
	c.JSON(http.StatusOK, res)
}

// financialReport godoc
// @Summary Financial report
// @Description Debit, credit and balance per account for journals created between the start of startDate and the end of endDate
// @Tags reports
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   startDate query string true "Start date (YYYY-MM-DD)"
// @Param   endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.FinancialReportRowResponse
// @Failure 400 {object} map[string]string "Invalid or missing dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /account/report/financial [get]
func (h *accountHandler) financialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.FinancialReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid financial report parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required as YYYY-MM-DD"})
		return
	}
	start, end, err := parseReportDates(params, h.loc)
	if err != nil {
		logger.Warn("Invalid financial report dates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required as YYYY-MM-DD"})
		return
	}

	rows, err := h.reportingService.GetFinancialReport(c.Request.Context(), storeID, start, end)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}

	logger.Info("Financial report generated", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(rows))
}

func parseReportDates(params dto.FinancialReportParams, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(reportDateLayout, params.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := time.ParseInLocation(reportDateLayout, params.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate: %w", err)
	}
	return start, end, nil
}
