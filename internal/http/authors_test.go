package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAuthor(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	w := server.doJSON(t, "POST", "/api/books/authors", `{"nom_auteur": "Herbert", "prenom_auteur": "Frank"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Herbert", body["nom_auteur"])
	assert.Equal(t, "Frank", body["prenom_auteur"])
}

func TestCreateAuthor_MissingLastName(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	w := server.doJSON(t, "POST", "/api/books/authors", `{"prenom_auteur": "Frank"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nom_auteur and prenom_auteur are required")
}

func TestUpdateAuthor_FirstNameOnly(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	created := decodeBody(t, server.doJSON(t, "POST", "/api/books/authors", `{"nom_auteur": "Asimov", "prenom_auteur": "Isaak"}`))
	id := uint(created["id_auteur"].(float64))

	w := server.doJSON(t, "PUT", fmt.Sprintf("/api/books/authors/%d", id), `{"prenom_auteur": "Isaac"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Asimov", body["nom_auteur"])
	assert.Equal(t, "Isaac", body["prenom_auteur"])
}

func TestDeleteAuthor_NotFound(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	w := server.doJSON(t, "DELETE", "/api/books/authors/77", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "author not found")
}
