package httpapi

import (
	"net/http"

	"toko-be/internal/cart"
	"toko-be/internal/inventory"
	"toko-be/internal/logger"
	"toko-be/internal/metrics"
	"toko-be/internal/middleware"
	"toko-be/internal/notify"
	"toko-be/internal/order"
	"toko-be/internal/product"
	"toko-be/internal/review"
	"toko-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Server struct {
	engine   *gin.Engine
	users    user.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
	reviews  review.Service
	stock    inventory.Service
	mailer   notify.Sender
	stats    *metrics.Store
}

type Deps struct {
	Users    user.Service
	Products product.Service
	Carts    cart.Service
	Orders   order.Service
	Reviews  review.Service
	Stock    inventory.Service
	Mailer   notify.Sender
	Stats    *metrics.Store
}

func NewServer(deps Deps) *Server {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.RequestID(),
		logger.RequestLogger(),
		middleware.Authenticate(),
		middleware.RateLimit(),
	)

	s := &Server{
		engine:   r,
		users:    deps.Users,
		products: deps.Products,
		carts:    deps.Carts,
		orders:   deps.Orders,
		reviews:  deps.Reviews,
		stock:    deps.Stock,
		mailer:   deps.Mailer,
		stats:    deps.Stats,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	if s.stats != nil {
		s.engine.Use(func(c *gin.Context) {
			s.stats.Requests.Inc()
			c.Next()
		})
	}

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", func(c *gin.Context) {
		if s.stats == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, s.stats.Snapshot())
	})

	v1 := s.engine.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.GET(":id/reviews", s.listReviews)
		products.POST(":id/reviews", middleware.RequireAuth(), s.submitReview)

		me := v1.Group("/me", middleware.RequireAuth())
		me.GET("", s.getProfile)
		me.PUT("", s.updateProfile)

		carts := v1.Group("/cart", middleware.RequireAuth())
		carts.GET("", s.getCart)
		carts.POST("/items", s.addCartItem)
		carts.PUT("/items/:productId", s.updateCartItem)
		carts.DELETE("/items/:productId", s.removeCartItem)
		carts.DELETE("", s.clearCart)

		orders := v1.Group("/orders", middleware.RequireAuth())
		orders.POST("", s.placeOrder)
		orders.GET("", s.listOwnOrders)
		orders.GET(":id", s.getOrder)

		admin := v1.Group("/admin", middleware.RequireAdmin())
		admin.POST("/products", s.createProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.GET("/inventory/:productId", s.getInventory)
		admin.PUT("/inventory/:productId", s.setInventory)
		admin.GET("/orders", s.listAllOrders)
		admin.PUT("/orders/:id/status", s.advanceOrderStatus)
		admin.GET("/users", s.listUsers)
		admin.PUT("/users/:id/admin", s.setUserAdmin)
		admin.GET("/users/:id/orders", s.listUserOrders)
	}
}
