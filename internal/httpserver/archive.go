package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getArchivedCartHandler(svc ArchiveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		archived, err := svc.GetByCart(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, archived)
	}
}

func listArchivedCartsHandler(svc ArchiveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		archived, err := svc.ListByUser(c.Request.Context(), c.Param("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, archived)
	}
}
