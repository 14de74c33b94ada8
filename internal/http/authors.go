package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// AuthorStore defines database operations for the author directory.
type AuthorStore interface {
	ListAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	CreateAuthor(author *entities.Author) error
	SaveAuthor(author *entities.Author) error
	DeleteAuthor(id uint) error
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

func serializeAuthor(a *entities.Author) gin.H {
	return gin.H{
		"id_auteur":     a.ID,
		"nom_auteur":    a.LastName,
		"prenom_auteur": a.FirstName,
	}
}

// ListAuthors returns all authors, newest first
// GET /api/books/authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := ac.store.ListAuthors()
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(authors))
	for i := range authors {
		payload = append(payload, serializeAuthor(&authors[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// CreateAuthor creates a new author; both name fields are required
// POST /api/books/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req struct {
		LastName  string `json:"nom_auteur"`
		FirstName string `json:"prenom_auteur"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.LastName == "" || req.FirstName == "" {
		respondBadRequest(c, "nom_auteur and prenom_auteur are required")
		return
	}

	author := &entities.Author{LastName: req.LastName, FirstName: req.FirstName}
	if err := ac.store.CreateAuthor(author); err != nil {
		respondServerError(c, err)
		return
	}

	respondCreated(c, serializeAuthor(author))
}

// UpdateAuthor replaces any subset of fields present in the body
// PUT /api/books/authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		respondNotFound(c, "author")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	if raw, present := body["nom_auteur"]; present {
		lastName, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "nom_auteur must be a string")
			return
		}
		author.LastName = lastName
	}
	if raw, present := body["prenom_auteur"]; present {
		firstName, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "prenom_auteur must be a string")
			return
		}
		author.FirstName = firstName
	}

	if err := ac.store.SaveAuthor(author); err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeAuthor(author))
}

// DeleteAuthor removes an author
// DELETE /api/books/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.store.GetAuthorByID(id); err != nil {
		respondNotFound(c, "author")
		return
	}

	if err := ac.store.DeleteAuthor(id); err != nil {
		respondServerError(c, err)
		return
	}

	respondDeleted(c)
}
