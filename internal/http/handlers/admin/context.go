package admin

import (
	handlershared "github.com/reviewloop/reviewloop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getShopID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "shop_id")
}
