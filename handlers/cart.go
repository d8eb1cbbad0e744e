package handlers

import (
	"net/http"
	"strconv"

	"shopease-server/models"

	"github.com/gin-gonic/gin"
)

// GetCart returns the user's cart with its current totals.
func (e *Env) GetCart(c *gin.Context) {
	sess := currentSession(c)
	cart := e.Cart.Get(c.Request.Context(), sess.User.ID)
	c.JSON(http.StatusOK, cart)
}

// AddToCart adds one unit of the posted product. The client sends the full
// product it got from the catalog; stock limits are the client's to enforce
// by disabling the add action.
func (e *Env) AddToCart(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.ID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	sess := currentSession(c)
	ev, cart := e.Cart.AddItem(c.Request.Context(), sess.User.ID, product)
	c.JSON(http.StatusOK, gin.H{
		"cart":    cart,
		"message": e.Notifier.CartNotice(ev),
	})
}

// UpdateCartItem sets a line item's quantity; zero or less removes the line.
func (e *Env) UpdateCartItem(c *gin.Context) {
	var req struct {
		ProductID int `json:"product_id" binding:"required"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess := currentSession(c)
	ev, cart := e.Cart.UpdateQuantity(c.Request.Context(), sess.User.ID, req.ProductID, req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"cart":    cart,
		"message": e.Notifier.CartNotice(ev),
	})
}

// RemoveFromCart deletes a line item by product id.
func (e *Env) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	sess := currentSession(c)
	ev, cart := e.Cart.RemoveItem(c.Request.Context(), sess.User.ID, productID)
	c.JSON(http.StatusOK, gin.H{
		"cart":    cart,
		"message": e.Notifier.CartNotice(ev),
	})
}

// ClearCart empties the cart.
func (e *Env) ClearCart(c *gin.Context) {
	sess := currentSession(c)
	ev, cart := e.Cart.Clear(c.Request.Context(), sess.User.ID)
	c.JSON(http.StatusOK, gin.H{
		"cart":    cart,
		"message": e.Notifier.CartNotice(ev),
	})
}
