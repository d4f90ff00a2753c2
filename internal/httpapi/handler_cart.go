package httpapi

import (
	"net/http"

	"toko-be/internal/auth"
	"toko-be/internal/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addCartItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) getCart(c *gin.Context) {
	actor, _ := auth.ActorFrom(c.Request.Context())

	lines, err := s.carts.GetLines(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if lines == nil {
		lines = []*cart.Line{}
	}
	c.JSON(http.StatusOK, gin.H{"items": lines})
}

func (s *Server) addCartItem(c *gin.Context) {
	actor, _ := auth.ActorFrom(c.Request.Context())

	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	line, err := s.carts.AddItem(c.Request.Context(), cart.AddItemParams{
		UserID:    actor.UserID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (s *Server) updateCartItem(c *gin.Context) {
	actor, _ := auth.ActorFrom(c.Request.Context())

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := s.carts.UpdateQuantity(c.Request.Context(), actor.UserID, productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeCartItem(c *gin.Context) {
	actor, _ := auth.ActorFrom(c.Request.Context())

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := s.carts.Remove(c.Request.Context(), actor.UserID, productID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clearCart(c *gin.Context) {
	actor, _ := auth.ActorFrom(c.Request.Context())

	if err := s.carts.Clear(c.Request.Context(), actor.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
