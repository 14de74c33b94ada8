package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog creates a category and two authors through the API so book
// tests have realistic foreign rows to point at.
func seedCatalog(t *testing.T, server *testServer) (categoryID, herbertID, asimovID uint) {
	t.Helper()

	category := decodeBody(t, server.doJSON(t, "POST", "/api/books/categories", `{"nom_cat": "Science-Fiction"}`))
	herbert := decodeBody(t, server.doJSON(t, "POST", "/api/books/authors", `{"nom_auteur": "Herbert", "prenom_auteur": "Frank"}`))
	asimov := decodeBody(t, server.doJSON(t, "POST", "/api/books/authors", `{"nom_auteur": "Asimov", "prenom_auteur": "Isaac"}`))

	return uint(category["id_cat"].(float64)),
		uint(herbert["id_auteur"].(float64)),
		uint(asimov["id_auteur"].(float64))
}

func TestCreateBook(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, _ := seedCatalog(t, server)

	w := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "isbn": "9780441013593", "quantite": 3, "cat_id": %d, "auteur_ids": [%d]}`,
		categoryID, herbertID))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Dune", body["titre"])
	assert.Equal(t, float64(3), body["quantite"])

	category := body["categorie"].(map[string]any)
	assert.Equal(t, "Science-Fiction", category["nom_cat"])

	authors := body["auteurs"].([]any)
	require.Len(t, authors, 1)
	assert.Equal(t, "Herbert", authors[0].(map[string]any)["nom_auteur"])
}

func TestCreateBook_QuantityDefaultsToOne(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	w := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(`{"titre": "Dune", "cat_id": %d}`, categoryID))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["quantite"])
}

func TestCreateBook_NullQuantity(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	w := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "quantite": null, "cat_id": %d}`, categoryID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantite must be a non-negative integer")

	books, err := server.catalog.ListBooks(0, "")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCreateBook_MissingTitle(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	w := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(`{"cat_id": %d}`, categoryID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "titre is required")

	books, err := server.catalog.ListBooks(0, "")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCreateBook_UnknownCategory(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	w := server.doJSON(t, "POST", "/api/books/books", `{"titre": "Dune", "cat_id": 999}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cat_id does not exist")
}

func TestCreateBook_MissingAuthorsReported(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, _ := seedCatalog(t, server)

	w := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "cat_id": %d, "auteur_ids": [%d, 999]}`, categoryID, herbertID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "some auteur_ids do not exist", body["error"])

	details := body["details"].(map[string]any)
	missing := details["missing_ids"].([]any)
	require.Len(t, missing, 1)
	assert.Equal(t, float64(999), missing[0])

	// the whole write is refused, nothing persisted
	books, err := server.catalog.ListBooks(0, "")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestListBooks_SearchByTitle(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, asimovID := seedCatalog(t, server)

	server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, herbertID))
	server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Foundation", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, asimovID))

	w := server.doJSON(t, "GET", "/api/books/books?q=dune", "")

	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Dune", list[0]["titre"])
}

func TestListBooks_SearchByAuthorName(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, asimovID := seedCatalog(t, server)

	server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, herbertID))
	server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Foundation", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, asimovID))

	w := server.doJSON(t, "GET", "/api/books/books?q=asimov", "")

	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Foundation", list[0]["titre"])
}

func TestListBooks_UnparsableCategoryFilterIgnored(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(`{"titre": "Dune", "cat_id": %d}`, categoryID))

	w := server.doJSON(t, "GET", "/api/books/books?catId=all", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestGetBook_NotFound(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	w := server.doJSON(t, "GET", "/api/books/books/123", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "book not found")
}

func TestUpdateBook_ReplacesAuthorSet(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, asimovID := seedCatalog(t, server)

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, herbertID)))
	id := uint(created["id_livre"].(float64))

	w := server.doJSON(t, "PUT", fmt.Sprintf("/api/books/books/%d", id),
		fmt.Sprintf(`{"auteur_ids": [%d]}`, asimovID))

	require.Equal(t, http.StatusOK, w.Code)
	authors := decodeBody(t, w)["auteurs"].([]any)
	require.Len(t, authors, 1)
	assert.Equal(t, "Asimov", authors[0].(map[string]any)["nom_auteur"])
}

func TestUpdateBook_KeepsAuthorsWhenKeyAbsent(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, _ := seedCatalog(t, server)

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, herbertID)))
	id := uint(created["id_livre"].(float64))

	w := server.doJSON(t, "PUT", fmt.Sprintf("/api/books/books/%d", id), `{"quantite": 7}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(7), body["quantite"])
	assert.Len(t, body["auteurs"].([]any), 1)
}

func TestUpdateBook_RejectsBlankTitle(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(`{"titre": "Dune", "cat_id": %d}`, categoryID)))
	id := uint(created["id_livre"].(float64))

	w := server.doJSON(t, "PUT", fmt.Sprintf("/api/books/books/%d", id), `{"titre": ""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "titre cannot be empty")
}

func TestUpdateBook_RejectsNegativeQuantity(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(`{"titre": "Dune", "cat_id": %d}`, categoryID)))
	id := uint(created["id_livre"].(float64))

	w := server.doJSON(t, "PUT", fmt.Sprintf("/api/books/books/%d", id), `{"quantite": -2}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantite must be a non-negative integer")
}

func TestUpdateBook_RejectsNullQuantity(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "quantite": 5, "cat_id": %d}`, categoryID)))
	id := uint(created["id_livre"].(float64))

	w := server.doJSON(t, "PUT", fmt.Sprintf("/api/books/books/%d", id), `{"quantite": null}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantite must be a non-negative integer")
	// stock is untouched by the rejected write
	assert.Equal(t, float64(5), bookQuantity(t, server, id))
}

func TestDeleteBook(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, herbertID, _ := seedCatalog(t, server)

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "cat_id": %d, "auteur_ids": [%d]}`, categoryID, herbertID)))
	id := uint(created["id_livre"].(float64))

	w := server.doJSON(t, "DELETE", fmt.Sprintf("/api/books/books/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = server.doJSON(t, "GET", fmt.Sprintf("/api/books/books/%d", id), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()
	categoryID, _, _ := seedCatalog(t, server)

	first := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune", "isbn": "9780441013593", "cat_id": %d}`, categoryID))
	require.Equal(t, http.StatusCreated, first.Code)

	w := server.doJSON(t, "POST", "/api/books/books", fmt.Sprintf(
		`{"titre": "Dune (reissue)", "isbn": "9780441013593", "cat_id": %d}`, categoryID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "integrity error")
}
