package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bibliotheque/internal/database"
	"github.com/mrlokans/bibliotheque/internal/database/catalog"
	"github.com/mrlokans/bibliotheque/internal/database/loans"
	"github.com/mrlokans/bibliotheque/internal/database/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the full router against a throwaway sqlite database so
// handler tests exercise real routes and real storage.
type testServer struct {
	router  *gin.Engine
	catalog *catalog.Repository
	loans   *loans.Repository
	users   *users.Repository
}

func setupServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, database.Options{UniqueLogins: true})
	require.NoError(t, err)

	catalogRepo := catalog.NewRepository(db.DB)
	loansRepo := loans.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:   db,
		Catalog:    catalogRepo,
		Loans:      loansRepo,
		Users:      usersRepo,
		BcryptCost: bcrypt.MinCost,
		Version:    "test",
	})

	server := &testServer{
		router:  router,
		catalog: catalogRepo,
		loans:   loansRepo,
		users:   usersRepo,
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return server, cleanup
}

// doJSON performs a request with a JSON body ("" for none) and returns the
// recorder.
func (s *testServer) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("")
	} else {
		reader = bytes.NewBufferString(body)
	}

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var payload []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("2024-06-01")

	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, 2024, date.Year())
}

func TestParseDate_EmptyMeansAbsent(t *testing.T) {
	date, err := parseDate("")

	require.NoError(t, err)
	assert.Nil(t, date)
}

func TestParseDate_RejectsOtherFormats(t *testing.T) {
	for _, value := range []string{"01/06/2024", "2024-6-1", "2024-06-01T00:00:00Z", "yesterday"} {
		_, err := parseDate(value)
		assert.Error(t, err, "expected %q to be rejected", value)
	}
}

func TestFormatDate_NilIsNull(t *testing.T) {
	assert.Nil(t, formatDate(nil))
}

func TestAsInt(t *testing.T) {
	n, err := asInt(json.RawMessage(`42`))

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestAsInt_RejectsNonIntegers(t *testing.T) {
	for _, raw := range []string{`null`, `2.5`, `"3"`, `true`} {
		_, err := asInt(json.RawMessage(raw))
		assert.Error(t, err, "expected %s to be rejected", raw)
	}
}
