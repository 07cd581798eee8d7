package controllers

import (
	"food-marketplace/events"
	"food-marketplace/logger"

	"github.com/gin-gonic/gin"
)

// HandleWebSocket attaches the calling vendor's dashboard to the hub.
func HandleWebSocket(hub *events.Hub, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("ws")
	return func(c *gin.Context) {
		vendorID := principalID(c)
		if err := hub.Serve(c.Writer, c.Request, vendorID); err != nil {
			log.Warn("error during connection upgrade", "vendor_id", vendorID, "error", err)
		}
	}
}
