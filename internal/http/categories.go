package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// CategoryStore defines database operations for the category directory.
type CategoryStore interface {
	ListCategories() ([]entities.Category, error)
	GetCategoryByID(id uint) (*entities.Category, error)
	CreateCategory(category *entities.Category) error
	SaveCategory(category *entities.Category) error
	DeleteCategory(id uint) error
}

type CategoriesController struct {
	store CategoryStore
}

func NewCategoriesController(store CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

func serializeCategory(c *entities.Category) gin.H {
	return gin.H{
		"id_cat":  c.ID,
		"nom_cat": c.Name,
		"champ":   c.Field,
	}
}

// ListCategories returns all categories, newest first
// GET /api/books/categories
func (cc *CategoriesController) ListCategories(c *gin.Context) {
	categories, err := cc.store.ListCategories()
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(categories))
	for i := range categories {
		payload = append(payload, serializeCategory(&categories[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// CreateCategory creates a new category
// POST /api/books/categories
func (cc *CategoriesController) CreateCategory(c *gin.Context) {
	var req struct {
		Name  string `json:"nom_cat"`
		Field string `json:"champ"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		respondBadRequest(c, "nom_cat is required")
		return
	}

	category := &entities.Category{Name: req.Name, Field: req.Field}
	if err := cc.store.CreateCategory(category); err != nil {
		respondServerError(c, err)
		return
	}

	respondCreated(c, serializeCategory(category))
}

// UpdateCategory replaces any subset of fields present in the body
// PUT /api/books/categories/:id
func (cc *CategoriesController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetCategoryByID(id)
	if err != nil {
		respondNotFound(c, "category")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	if raw, present := body["nom_cat"]; present {
		name, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "nom_cat must be a string")
			return
		}
		category.Name = name
	}
	if raw, present := body["champ"]; present {
		field, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "champ must be a string")
			return
		}
		category.Field = field
	}

	if err := cc.store.SaveCategory(category); err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeCategory(category))
}

// DeleteCategory removes a category
// DELETE /api/books/categories/:id
func (cc *CategoriesController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := cc.store.GetCategoryByID(id); err != nil {
		respondNotFound(c, "category")
		return
	}

	if err := cc.store.DeleteCategory(id); err != nil {
		respondServerError(c, err)
		return
	}

	respondDeleted(c)
}
