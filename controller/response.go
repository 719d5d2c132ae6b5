package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// internalError answers with 500. The underlying message is only exposed
// outside release mode.
func internalError(c *gin.Context, err error) {
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	body := gin.H{"error": "Erro interno do servidor"}
	if gin.Mode() != gin.ReleaseMode {
		body["message"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
