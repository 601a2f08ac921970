package httpapi

import (
	"net/http"

	"github.com/ParsifalKing/Menu-project/internal/category"
	"github.com/ParsifalKing/Menu-project/internal/dish"
	"github.com/ParsifalKing/Menu-project/internal/drink"
	"github.com/ParsifalKing/Menu-project/internal/ingredient"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- ingredients ---

type ingredientReq struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Count       float64 `json:"count"`
	Price       float64 `json:"price"`
	PathPhoto   *string `json:"pathPhoto"`
}

func (s *Server) listIngredients(c *gin.Context) {
	ingredients, err := s.ingredients.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ingredients})
}

func (s *Server) getIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	i, err := s.ingredients.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": i})
}

func (s *Server) createIngredient(c *gin.Context) {
	var req ingredientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	i, err := s.ingredients.Create(c.Request.Context(), ingredient.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Count:       req.Count,
		Price:       req.Price,
		PathPhoto:   req.PathPhoto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": i})
}

func (s *Server) updateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ingredientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	i, err := s.ingredients.Update(c.Request.Context(), ingredient.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Count:       req.Count,
		Price:       req.Price,
		PathPhoto:   req.PathPhoto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": i})
}

func (s *Server) deleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.ingredients.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- dishes ---

type dishReq struct {
	Name                 string  `json:"name" binding:"required"`
	Description          string  `json:"description"`
	Price                float64 `json:"price"`
	Calorie              float64 `json:"calorie"`
	CookingTimeInMinutes int     `json:"cookingTimeInMinutes"`
	PathPhoto            *string `json:"pathPhoto"`
}

func (s *Server) listDishes(c *gin.Context) {
	dishes, err := s.dishes.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dishes})
}

func (s *Server) getDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := s.dishes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) createDish(c *gin.Context) {
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	d, err := s.dishes.Create(c.Request.Context(), dish.CreateInput{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Calorie:              req.Calorie,
		CookingTimeInMinutes: req.CookingTimeInMinutes,
		PathPhoto:            req.PathPhoto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": d})
}

func (s *Server) updateDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	d, err := s.dishes.Update(c.Request.Context(), dish.UpdateInput{
		ID:                   id,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Calorie:              req.Calorie,
		CookingTimeInMinutes: req.CookingTimeInMinutes,
		PathPhoto:            req.PathPhoto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) deleteDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.dishes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type linkReq struct {
	IngredientID uuid.UUID `json:"ingredientId" binding:"required"`
	Quantity     float64   `json:"quantity" binding:"required"`
	Description  string    `json:"description"`
}

func (s *Server) addDishIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req linkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	link, err := s.dishes.AddIngredient(c.Request.Context(), dish.LinkInput{
		DishID:       id,
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": link})
}

func (s *Server) removeDishIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := parseIDParam(c, "ingredientId")
	if !ok {
		return
	}
	if err := s.dishes.RemoveIngredient(c.Request.Context(), id, ingredientID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- drinks ---

type drinkReq struct {
	Name                 string  `json:"name" binding:"required"`
	Description          string  `json:"description"`
	Price                float64 `json:"price"`
	CookingTimeInMinutes int     `json:"cookingTimeInMinutes"`
	PathPhoto            *string `json:"pathPhoto"`
}

func (s *Server) listDrinks(c *gin.Context) {
	drinks, err := s.drinks.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drinks})
}

func (s *Server) getDrink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := s.drinks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) createDrink(c *gin.Context) {
	var req drinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	d, err := s.drinks.Create(c.Request.Context(), drink.CreateInput{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		CookingTimeInMinutes: req.CookingTimeInMinutes,
		PathPhoto:            req.PathPhoto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": d})
}

func (s *Server) updateDrink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req drinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	d, err := s.drinks.Update(c.Request.Context(), drink.UpdateInput{
		ID:                   id,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		CookingTimeInMinutes: req.CookingTimeInMinutes,
		PathPhoto:            req.PathPhoto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) deleteDrink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.drinks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addDrinkIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req linkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	link, err := s.drinks.AddIngredient(c.Request.Context(), drink.LinkInput{
		DrinkID:      id,
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": link})
}

func (s *Server) removeDrinkIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := parseIDParam(c, "ingredientId")
	if !ok {
		return
	}
	if err := s.drinks.RemoveIngredient(c.Request.Context(), id, ingredientID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- categories ---

type categoryReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.categories.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (s *Server) getCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cat, err := s.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

func (s *Server) createCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	cat, err := s.categories.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": cat})
}

func (s *Server) updateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	cat, err := s.categories.Update(c.Request.Context(), category.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) linkCategoryDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dishID, ok := parseIDParam(c, "dishId")
	if !ok {
		return
	}
	if err := s.categories.LinkDish(c.Request.Context(), id, dishID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) unlinkCategoryDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dishID, ok := parseIDParam(c, "dishId")
	if !ok {
		return
	}
	if err := s.categories.UnlinkDish(c.Request.Context(), id, dishID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
