package httpapi

import (
	"net/http"

	"github.com/ParsifalKing/Menu-project/internal/user"
	"github.com/ParsifalKing/Menu-project/internal/utils"

	"github.com/gin-gonic/gin"
)

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	token, u, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Phone, req.Password)
	if err == user.ErrEmailExists {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"token": token,
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
		},
	}})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	token, u, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err == user.ErrBadLogin {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{err.Error()}})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"token": token,
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
		},
	}})
}

func (s *Server) me(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"authentication required"}})
		return
	}

	u, err := s.users.GetByID(c.Request.Context(), userID)
	if err == user.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"errors": []string{err.Error()}})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"phone":    u.Phone,
		"role":     u.Role,
	}})
}
