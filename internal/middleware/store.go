package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// StoreHeader names the header that scopes a request to one store.
const StoreHeader = "X-Store-Uuid"

// StoreMiddleware requires the store header and puts its value in the request context.
func StoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := strings.TrimSpace(c.GetHeader(StoreHeader))
		if storeID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Store header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": StoreHeader + " header required"})
			return
		}

		ctx := WithStoreID(c.Request.Context(), storeID)
		ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("store_id", storeID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
