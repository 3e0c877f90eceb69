package handlers

import (
	"log/slog"
	"net/http"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
	"github.com/api-diengcyber/transaksi-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journal")
	{
		journals.POST("/sale", h.createSale)
		journals.POST("/stock-adjustment", h.stockAdjustment)
		journals.GET("/report", h.listJournals)
		journals.GET("/report/:type", h.listJournals)
		journals.GET("/:code", h.getJournal)
		journals.POST("/:code/verify", h.verifyJournal)
	}
}

// createSale godoc
// @Summary Record a sale journal
// @Description Stores the sale payload as a SALE journal with one detail row per field
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   sale body dto.CreateSaleJournalRequest true "Sale details"
// @Success 201 {object} dto.CreateJournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Journal code contention, retry"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Security BearerAuth
// @Router /journal/sale [post]
func (h *journalHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateSaleJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), domain.TxSale, req.Details, userID, storeID, nil)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}

	logger.Info("Sale journal created", slog.String("code", journal.Code))
	c.JSON(http.StatusCreated, dto.ToCreateJournalResponse("Journal created successfully", journal))
}

// stockAdjustment godoc
// @Summary Record stock adjustments
// @Description Journals the non-zero quantity changes as a STOCK_ADJUSTMENT. Nothing is stored when every change is zero.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   adjustments body dto.StockAdjustmentRequest true "Quantity changes"
// @Success 201 {object} dto.CreateJournalResponse
// @Success 200 {object} map[string]string "No quantity changed"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to process stock adjustment"
// @Security BearerAuth
// @Router /journal/stock-adjustment [post]
func (h *journalHandler) stockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StockAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	journal, err := h.journalService.ProcessStockAdjustment(c.Request.Context(), req.ToDomain(), userID, nil, storeID)
	if err != nil {
		respondError(c, err, "Failed to process stock adjustment")
		return
	}
	if journal == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No stock changes to journal"})
		return
	}

	logger.Info("Stock adjustment journal created", slog.String("code", journal.Code))
	c.JSON(http.StatusCreated, dto.ToCreateJournalResponse("Stock adjustment journal created successfully", journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists the store's journals of one transaction type, or all of them, newest first
// @Tags journals
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   type path string false "Transaction type, e.g. SALE"
// @Success 200 {array} dto.JournalWithDetailsResponse
// @Failure 400 {object} map[string]string "Invalid transaction type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journal/report/{type} [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	journals, err := h.journalService.FindAllByType(c.Request.Context(), storeID, c.Param("type"))
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalListResponse(journals))
}

// getJournal godoc
// @Summary Get a journal by code
// @Tags journals
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   code path string true "Journal code"
// @Success 200 {object} dto.JournalWithDetailsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journal/{code} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByCode(c.Request.Context(), storeID, c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalListResponse([]domain.Journal{*journal})[0])
}

// verifyJournal godoc
// @Summary Verify a journal
// @Description Marks a journal verified. Verifying an already verified journal returns it unchanged.
// @Tags journals
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   code path string true "Journal code"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to verify journal"
// @Security BearerAuth
// @Router /journal/{code}/verify [post]
func (h *journalHandler) verifyJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	journal, err := h.journalService.VerifyJournal(c.Request.Context(), storeID, c.Param("code"), userID)
	if err != nil {
		respondError(c, err, "Failed to verify journal")
		return
	}
	logger.Info("Journal verified", slog.String("code", journal.Code))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
