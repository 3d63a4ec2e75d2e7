package admin

import (
	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func parsePathID(c *gin.Context, name string) (uint, bool) {
	id, ok := handlershared.ParsePathID(c, name)
	return id, ok
}
