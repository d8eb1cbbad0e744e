package handlers

import (
	"errors"
	"net/http"

	"shopease-server/services"

	"github.com/gin-gonic/gin"
)

// GetProducts proxies the catalog for the dashboard grid. No caching and no
// retry: a failed fetch surfaces immediately and the user retries by hand.
func (e *Env) GetProducts(c *gin.Context) {
	list, err := e.Catalog.FetchProducts(c.Request.Context())
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, list)
}
