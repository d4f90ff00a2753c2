package httpapi

import (
	"net/http"

	"toko-be/internal/user"

	"github.com/gin-gonic/gin"
)

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func (s *Server) register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	token, u, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResp{
		Token:   token,
		UserID:  u.ID.String(),
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	token, u, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResp{
		Token:   token,
		UserID:  u.ID.String(),
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	})
}

type updateProfileReq struct {
	FullName *string `json:"full_name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.users.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResp(p))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := s.users.UpdateProfile(c.Request.Context(), user.UpdateProfileParams{
		FullName: req.FullName,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResp(p))
}

func profileResp(p *user.Profile) gin.H {
	return gin.H{
		"user_id":   p.UserID,
		"full_name": p.FullName,
		"address":   p.Address,
		"phone":     p.Phone,
	}
}
