package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
	"github.com/api-diengcyber/transaksi-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalConfigHandler handles HTTP requests related to posting rules.
type journalConfigHandler struct {
	configService portssvc.JournalConfigSvcFacade
}

func newJournalConfigHandler(cs portssvc.JournalConfigSvcFacade) *journalConfigHandler {
	return &journalConfigHandler{configService: cs}
}

// registerJournalConfigRoutes registers routes related to posting rules.
func registerJournalConfigRoutes(rg *gin.RouterGroup, configService portssvc.JournalConfigSvcFacade) {
	h := newJournalConfigHandler(configService)

	configs := rg.Group("/journal-config")
	{
		configs.POST("", h.createConfig)
		configs.GET("", h.listConfigs)
		configs.GET("/discovery", h.discovery)
		configs.GET("/:id", h.getConfig)
		configs.PUT("/:id", h.updateConfig)
		configs.DELETE("/:id", h.deleteConfig)
	}
}

// createConfig godoc
// @Summary Create a posting rule
// @Description Maps a transaction type and detail key to an account and side
// @Tags journal-config
// @Accept  json
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   config body dto.CreateJournalConfigRequest true "Posting rule"
// @Success 201 {object} dto.JournalConfigResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create journal config"
// @Security BearerAuth
// @Router /journal-config [post]
func (h *journalConfigHandler) createConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateJournalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cfg, err := h.configService.CreateConfig(c.Request.Context(), storeID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal config")
		return
	}
	logger.Info("Journal config created", slog.String("config_id", cfg.ConfigID))
	c.JSON(http.StatusCreated, dto.ToJournalConfigResponse(cfg))
}

// listConfigs godoc
// @Summary List posting rules
// @Tags journal-config
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Success 200 {array} dto.JournalConfigResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal configs"
// @Security BearerAuth
// @Router /journal-config [get]
func (h *journalConfigHandler) listConfigs(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	configs, err := h.configService.ListConfigs(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, err, "Failed to list journal configs")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalConfigListResponse(configs))
}

// getConfig godoc
// @Summary Get a posting rule
// @Tags journal-config
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   id path string true "Config ID"
// @Success 200 {object} dto.JournalConfigResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal config not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal config"
// @Security BearerAuth
// @Router /journal-config/{id} [get]
func (h *journalConfigHandler) getConfig(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	cfg, err := h.configService.GetConfig(c.Request.Context(), storeID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal config")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalConfigResponse(cfg))
}

// updateConfig godoc
// @Summary Update a posting rule
// @Tags journal-config
// @Accept  json
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   id path string true "Config ID"
// @Param   config body dto.UpdateJournalConfigRequest true "Fields to change"
// @Success 200 {object} dto.JournalConfigResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal config or account not found"
// @Failure 500 {object} map[string]string "Failed to update journal config"
// @Security BearerAuth
// @Router /journal-config/{id} [put]
func (h *journalConfigHandler) updateConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateJournalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cfg, err := h.configService.UpdateConfig(c.Request.Context(), storeID, c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update journal config")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalConfigResponse(cfg))
}

// deleteConfig godoc
// @Summary Delete a posting rule
// @Description Soft deletes the rule. It stops taking part in reports immediately.
// @Tags journal-config
// @Param   X-Store-Uuid header string true "Store ID"
// @Param   id path string true "Config ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal config not found"
// @Failure 500 {object} map[string]string "Failed to delete journal config"
// @Security BearerAuth
// @Router /journal-config/{id} [delete]
func (h *journalConfigHandler) deleteConfig(c *gin.Context) {
	userID, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	if err := h.configService.DeleteConfig(c.Request.Context(), storeID, c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete journal config")
		return
	}
	c.Status(http.StatusNoContent)
}

// discovery godoc
// @Summary Discover posted detail keys
// @Description Lists the detail keys found in the store's journals and whether a posting rule resolves them
// @Tags journal-config
// @Produce  json
// @Param   X-Store-Uuid header string true "Store ID"
// @Success 200 {object} dto.DiscoveryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to discover detail keys"
// @Security BearerAuth
// @Router /journal-config/discovery [get]
func (h *journalConfigHandler) discovery(c *gin.Context) {
	_, storeID, ok := requestScope(c)
	if !ok {
		return
	}

	keys, err := h.configService.DiscoverDetailKeys(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, err, "Failed to discover detail keys")
		return
	}
	res := dto.DiscoveryResponse{Keys: keys}
	for _, k := range keys {
		if !k.Mapped {
			res.Unmapped++
		}
	}
	c.JSON(http.StatusOK, res)
}
