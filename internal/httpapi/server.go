package httpapi

import (
	"net/http"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/blockcontrol"
	"github.com/ParsifalKing/Menu-project/internal/category"
	"github.com/ParsifalKing/Menu-project/internal/dish"
	"github.com/ParsifalKing/Menu-project/internal/drink"
	"github.com/ParsifalKing/Menu-project/internal/ingredient"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/middleware"
	"github.com/ParsifalKing/Menu-project/internal/notification"
	"github.com/ParsifalKing/Menu-project/internal/order"
	"github.com/ParsifalKing/Menu-project/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Server struct {
	engine *gin.Engine

	users         user.Service
	ingredients   ingredient.Service
	dishes        dish.Service
	drinks        drink.Service
	categories    category.Service
	orders        order.Service
	notifications notification.Service
	gate          blockcontrol.Service
}

func NewServer(
	users user.Service,
	ingredients ingredient.Service,
	dishes dish.Service,
	drinks drink.Service,
	categories category.Service,
	orders order.Service,
	notifications notification.Service,
	gate blockcontrol.Service,
) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(), middleware.Auth(), middleware.RateLimit())

	s := &Server{
		engine:        r,
		users:         users,
		ingredients:   ingredients,
		dishes:        dishes,
		drinks:        drinks,
		categories:    categories,
		orders:        orders,
		notifications: notifications,
		gate:          gate,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/me", middleware.RequireUser(), s.me)

	ingredients := api.Group("/ingredients", middleware.RequireUser())
	ingredients.GET("", s.listIngredients)
	ingredients.GET(":id", s.getIngredient)
	ingredients.POST("", middleware.RequireAdmin(), s.createIngredient)
	ingredients.PUT(":id", middleware.RequireAdmin(), s.updateIngredient)
	ingredients.DELETE(":id", middleware.RequireAdmin(), s.deleteIngredient)

	dishes := api.Group("/dishes")
	dishes.GET("", s.listDishes)
	dishes.GET(":id", s.getDish)
	dishes.POST("", middleware.RequireAdmin(), s.createDish)
	dishes.PUT(":id", middleware.RequireAdmin(), s.updateDish)
	dishes.DELETE(":id", middleware.RequireAdmin(), s.deleteDish)
	dishes.POST(":id/ingredients", middleware.RequireAdmin(), s.addDishIngredient)
	dishes.DELETE(":id/ingredients/:ingredientId", middleware.RequireAdmin(), s.removeDishIngredient)

	drinks := api.Group("/drinks")
	drinks.GET("", s.listDrinks)
	drinks.GET(":id", s.getDrink)
	drinks.POST("", middleware.RequireAdmin(), s.createDrink)
	drinks.PUT(":id", middleware.RequireAdmin(), s.updateDrink)
	drinks.DELETE(":id", middleware.RequireAdmin(), s.deleteDrink)
	drinks.POST(":id/ingredients", middleware.RequireAdmin(), s.addDrinkIngredient)
	drinks.DELETE(":id/ingredients/:ingredientId", middleware.RequireAdmin(), s.removeDrinkIngredient)

	categories := api.Group("/categories")
	categories.GET("", s.listCategories)
	categories.GET(":id", s.getCategory)
	categories.POST("", middleware.RequireAdmin(), s.createCategory)
	categories.PUT(":id", middleware.RequireAdmin(), s.updateCategory)
	categories.DELETE(":id", middleware.RequireAdmin(), s.deleteCategory)
	categories.POST(":id/dishes/:dishId", middleware.RequireAdmin(), s.linkCategoryDish)
	categories.DELETE(":id/dishes/:dishId", middleware.RequireAdmin(), s.unlinkCategoryDish)

	orders := api.Group("/orders", middleware.RequireUser())
	orders.GET("/block-control", middleware.RequireAdmin(), s.getBlockControl)
	orders.PUT("/block-control", middleware.RequireAdmin(), s.setBlockControl)
	orders.POST("", s.createOrder)
	orders.GET("", s.listOrders)
	orders.GET(":id", s.getOrder)
	orders.PUT(":id", middleware.RequireAdmin(), s.updateOrderStatus)
	orders.DELETE(":id", middleware.RequireAdmin(), s.deleteOrder)

	notifications := api.Group("/notifications", middleware.RequireUser(), middleware.RequireAdmin())
	notifications.GET("", s.listNotifications)
	notifications.GET(":id", s.getNotification)
}

// respondError maps the failure kind to an HTTP status and returns the
// message list. Internal causes are logged, never leaked.
func respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"errors": apperr.MessagesOf(err)})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid id"}})
		return uuid.Nil, false
	}
	return id, true
}
