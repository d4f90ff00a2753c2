package httpapi

import (
	"net/http"

	"toko-be/internal/review"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type submitReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) listReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	reviews, err := s.reviews.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []*review.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (s *Server) submitReview(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req submitReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	rev, err := s.reviews.Submit(c.Request.Context(), review.SubmitParams{
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}
