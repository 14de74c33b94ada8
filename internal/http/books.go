package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// BookStore defines database operations for the book catalog. Category and
// author lookups are included because book writes validate both before
// touching storage.
type BookStore interface {
	ListBooks(categoryID uint, search string) ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book, authorIDs []uint) error
	UpdateBook(book *entities.Book, authorIDs []uint, replaceAuthors bool) error
	DeleteBook(id uint) error
	GetCategoryByID(id uint) (*entities.Category, error)
	FindAuthorsByIDs(ids []uint) ([]entities.Author, error)
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

func serializeBook(b *entities.Book) gin.H {
	var category any
	if b.Category.ID != 0 {
		category = serializeCategory(&b.Category)
	}

	authors := make([]gin.H, 0, len(b.Authors))
	for i := range b.Authors {
		authors = append(authors, serializeAuthor(&b.Authors[i]))
	}

	return gin.H{
		"id_livre":  b.ID,
		"isbn":      b.ISBN,
		"titre":     b.Title,
		"quantite":  b.Quantity,
		"cat_id":    b.CategoryID,
		"categorie": category,
		"auteurs":   authors,
	}
}

// missingAuthorIDs returns the requested ids that resolve to no author, in
// request order. The whole write fails when any id is missing; there is no
// partial apply.
func (bc *BooksController) missingAuthorIDs(authorIDs []uint) ([]uint, error) {
	authors, err := bc.store.FindAuthorsByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(authors))
	for _, a := range authors {
		found[a.ID] = true
	}
	var missing []uint
	for _, id := range authorIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ListBooks returns books, optionally filtered by category and a free-text
// search over title, isbn and author names
// GET /api/books/books?catId=&q=
func (bc *BooksController) ListBooks(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("catId"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID = uint(parsed)
		}
	}
	search := strings.TrimSpace(c.Query("q"))

	books, err := bc.store.ListBooks(categoryID, search)
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(books))
	for i := range books {
		payload = append(payload, serializeBook(&books[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// GetBook returns a single book with category and authors embedded
// GET /api/books/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		respondNotFound(c, "book")
		return
	}

	c.JSON(http.StatusOK, serializeBook(book))
}

// CreateBook creates a book with its full author membership
// POST /api/books/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req struct {
		Title      string          `json:"titre"`
		ISBN       string          `json:"isbn"`
		Quantity   json.RawMessage `json:"quantite"`
		CategoryID *uint           `json:"cat_id"`
		AuthorIDs  []uint          `json:"auteur_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Title == "" {
		respondBadRequest(c, "titre is required")
		return
	}
	if req.CategoryID == nil {
		respondBadRequest(c, "cat_id is required")
		return
	}
	// quantite defaults to 1 when the key is absent; a key present with
	// null or a non-integer value is rejected, not defaulted.
	quantity := 1
	if len(req.Quantity) > 0 {
		parsed, err := asInt(req.Quantity)
		if err != nil || parsed < 0 {
			respondBadRequest(c, "quantite must be a non-negative integer")
			return
		}
		quantity = parsed
	}

	if _, err := bc.store.GetCategoryByID(*req.CategoryID); err != nil {
		respondBadRequest(c, "cat_id does not exist")
		return
	}

	missing, err := bc.missingAuthorIDs(req.AuthorIDs)
	if err != nil {
		respondServerError(c, err)
		return
	}
	if len(missing) > 0 {
		respondBadRequestDetails(c, "some auteur_ids do not exist", gin.H{"missing_ids": missing})
		return
	}

	book := &entities.Book{
		Title:      req.Title,
		ISBN:       req.ISBN,
		Quantity:   quantity,
		CategoryID: *req.CategoryID,
	}
	if err := bc.store.CreateBook(book, req.AuthorIDs); err != nil {
		if isConstraintViolation(err) {
			respondConstraintViolation(c, err)
			return
		}
		respondServerError(c, err)
		return
	}

	created, err := bc.store.GetBookByID(book.ID)
	if err != nil {
		respondServerError(c, err)
		return
	}
	respondCreated(c, serializeBook(created))
}

// UpdateBook updates each field whose key is present in the body. When
// auteur_ids is present the author set is replaced, not merged.
// PUT /api/books/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		respondNotFound(c, "book")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	if raw, present := body["titre"]; present {
		title, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "titre must be a string")
			return
		}
		if title == "" {
			respondBadRequest(c, "titre cannot be empty")
			return
		}
		book.Title = title
	}

	if raw, present := body["isbn"]; present {
		isbn, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "isbn must be a string")
			return
		}
		book.ISBN = isbn
	}

	if raw, present := body["quantite"]; present {
		quantity, err := asInt(raw)
		if err != nil || quantity < 0 {
			respondBadRequest(c, "quantite must be a non-negative integer")
			return
		}
		book.Quantity = quantity
	}

	if raw, present := body["cat_id"]; present {
		categoryID, err := asUintPtr(raw)
		if err != nil {
			respondBadRequest(c, "cat_id must be an integer")
			return
		}
		if categoryID == nil {
			respondBadRequest(c, "cat_id does not exist")
			return
		}
		if _, err := bc.store.GetCategoryByID(*categoryID); err != nil {
			respondBadRequest(c, "cat_id does not exist")
			return
		}
		book.CategoryID = *categoryID
	}

	var authorIDs []uint
	replaceAuthors := false
	if raw, present := body["auteur_ids"]; present {
		if err := json.Unmarshal(raw, &authorIDs); err != nil {
			respondBadRequest(c, "auteur_ids must be a list of integers")
			return
		}
		missing, err := bc.missingAuthorIDs(authorIDs)
		if err != nil {
			respondServerError(c, err)
			return
		}
		if len(missing) > 0 {
			respondBadRequestDetails(c, "some auteur_ids do not exist", gin.H{"missing_ids": missing})
			return
		}
		replaceAuthors = true
	}

	if err := bc.store.UpdateBook(book, authorIDs, replaceAuthors); err != nil {
		if isConstraintViolation(err) {
			respondConstraintViolation(c, err)
			return
		}
		respondServerError(c, err)
		return
	}

	updated, err := bc.store.GetBookByID(book.ID)
	if err != nil {
		respondServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeBook(updated))
}

// DeleteBook removes the book and its author links; loans referencing it
// are not checked
// DELETE /api/books/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.store.GetBookByID(id); err != nil {
		respondNotFound(c, "book")
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		respondServerError(c, err)
		return
	}

	respondDeleted(c)
}
