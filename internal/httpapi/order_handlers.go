package httpapi

import (
	"net/http"
	"time"

	"github.com/ParsifalKing/Menu-project/internal/order"
	"github.com/ParsifalKing/Menu-project/internal/user"
	"github.com/ParsifalKing/Menu-project/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type orderLineReq struct {
	DishID   *uuid.UUID `json:"dishId"`
	DrinkID  *uuid.UUID `json:"drinkId"`
	Quantity int        `json:"quantity"`
}

type createOrderReq struct {
	OrderInfo            string         `json:"orderInfo"`
	DateOfPreparingOrder time.Time      `json:"dateOfPreparingOrder" binding:"required"`
	Lines                []orderLineReq `json:"lines" binding:"required"`
}

func (s *Server) createOrder(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"authentication required"}})
		return
	}

	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	in := order.CreateInput{
		OrderInfo:            req.OrderInfo,
		UserID:               userID,
		DateOfPreparingOrder: req.DateOfPreparingOrder,
	}
	for _, line := range req.Lines {
		in.Lines = append(in.Lines, order.LineInput{
			DishID:   line.DishID,
			DrinkID:  line.DrinkID,
			Quantity: line.Quantity,
		})
	}

	o, err := s.orders.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": o})
}

// listOrders returns all orders for admins and only the caller's own orders
// for everyone else. An optional ?status= filter applies to both.
func (s *Server) listOrders(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"authentication required"}})
		return
	}
	role := utils.GetUserRoleFromContext(c.Request.Context())

	var filter order.Filter
	if role != string(user.RoleAdmin) {
		filter.UserID = &userID
	}
	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid order status: " + raw}})
			return
		}
		filter.Status = &status
	}

	orders, err := s.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	role := utils.GetUserRoleFromContext(c.Request.Context())

	o, err := s.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if role != string(user.RoleAdmin) && o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"errors": []string{"order not found by id:" + id.String()}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": o})
}

type updateOrderStatusReq struct {
	Status order.Status `json:"status" binding:"required"`
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	o, err := s.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": o})
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- block control ---

func (s *Server) getBlockControl(c *gin.Context) {
	b, err := s.gate.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

type setBlockControlReq struct {
	IsBlocked *bool `json:"isBlocked" binding:"required"`
}

func (s *Server) setBlockControl(c *gin.Context) {
	var req setBlockControlReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	b, err := s.gate.SetBlocked(c.Request.Context(), *req.IsBlocked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// --- notifications ---

func (s *Server) listNotifications(c *gin.Context) {
	notifications, err := s.notifications.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (s *Server) getNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	n, err := s.notifications.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": n})
}
