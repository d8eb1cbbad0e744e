package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the storefront's route table. The page routes the client
// navigates (/login, /dashboard, /cart, /checkout) map onto these API
// groups.
func Router(env *Env) *gin.Engine {
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "ShopEase server is running",
		})
	})

	api := router.Group("/api/v1")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", env.Login)
			auth.POST("/logout", env.Logout)
			auth.GET("/me", env.AuthMiddleware(), env.Me)
		}

		// Catalog routes (protected: the dashboard is a protected page)
		products := api.Group("/products")
		products.Use(env.AuthMiddleware())
		{
			products.GET("/", env.GetProducts)
		}

		// Cart routes (protected)
		cart := api.Group("/cart")
		cart.Use(env.AuthMiddleware())
		{
			cart.GET("/", env.GetCart)
			cart.POST("/add", env.AddToCart)
			cart.PUT("/update", env.UpdateCartItem)
			cart.DELETE("/remove/:productId", env.RemoveFromCart)
			cart.DELETE("/clear", env.ClearCart)
		}

		// Checkout routes (protected)
		checkout := api.Group("/checkout")
		checkout.Use(env.AuthMiddleware())
		{
			checkout.POST("/begin", env.BeginCheckout)
			checkout.GET("/", env.GetCheckout)
			checkout.PUT("/shipping", env.UpdateShipping)
			checkout.PUT("/payment", env.UpdatePayment)
			checkout.POST("/advance", env.AdvanceCheckout)
			checkout.POST("/back", env.BackCheckout)
			checkout.POST("/place-order", env.PlaceOrder)
			checkout.DELETE("/", env.AbandonCheckout)
		}
	}

	return router
}
