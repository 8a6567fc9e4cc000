package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	dbadapter "user-service/internal/adapter/db/postgres"
	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/router"
	"user-service/internal/usecase/user"
)

// userJSON mirrors the wire shape of a user record.
type userJSON struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Priority *int    `json:"priority"`
}

// UserAPIIntegrationTestSuite drives the full HTTP stack against an
// in-memory sqlite store: router, middleware, handler, usecase, repository.
type UserAPIIntegrationTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
}

func (s *UserAPIIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.AutoMigrate(&dbadapter.UserSchema{}))
	s.db = db

	logger := zaptest.NewLogger(s.T())
	repo := dbadapter.NewUserRepoPG(db, logger)
	uc := user.New(repo, logger)
	h := handler.NewUserHandler(uc, logger)

	// Rate limiting stays off: no redis in the loop
	s.server = httptest.NewServer(router.SetupRouter(h, nil, logger))
}

func (s *UserAPIIntegrationTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *UserAPIIntegrationTestSuite) url(path string) string {
	return s.server.URL + path
}

func (s *UserAPIIntegrationTestSuite) postUser(body string) (*http.Response, []byte) {
	resp, err := http.Post(s.url("/user"), "application/json", bytes.NewBufferString(body))
	require.NoError(s.T(), err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	resp.Body.Close()
	return resp, data
}

func (s *UserAPIIntegrationTestSuite) get(path string) (*http.Response, []byte) {
	resp, err := http.Get(s.url(path))
	require.NoError(s.T(), err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	resp.Body.Close()
	return resp, data
}

func (s *UserAPIIntegrationTestSuite) delete(path string) (*http.Response, []byte) {
	req, err := http.NewRequest(http.MethodDelete, s.url(path), nil)
	require.NoError(s.T(), err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.T(), err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	resp.Body.Close()
	return resp, data
}

// TestUserLifecycle walks the whole contract: create, list, get, query by
// priority, delete, and the post-delete lookups.
func (s *UserAPIIntegrationTestSuite) TestUserLifecycle() {
	// POST a new user: id is assigned by the store
	resp, body := s.postUser(`{"name":"A","email":"a@x.com","priority":1}`)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created userJSON
	s.Require().NoError(json.Unmarshal(body, &created))
	s.NotZero(created.ID)
	s.Equal("A", *created.Name)
	s.Equal("a@x.com", *created.Email)
	s.Equal(1, *created.Priority)

	idPath := fmt.Sprintf("/user/%d", created.ID)

	// GET /user contains the record
	resp, body = s.get("/user")
	s.Equal(http.StatusOK, resp.StatusCode)
	var all []userJSON
	s.Require().NoError(json.Unmarshal(body, &all))
	s.Require().Len(all, 1)
	s.Equal(created.ID, all[0].ID)

	// GET /user/{id} returns it
	resp, body = s.get(idPath)
	s.Equal(http.StatusOK, resp.StatusCode)
	var got userJSON
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal(created.ID, got.ID)

	// GET /user/query?priority=1 contains it
	resp, body = s.get("/user/query?priority=1")
	s.Equal(http.StatusOK, resp.StatusCode)
	var byPriority []userJSON
	s.Require().NoError(json.Unmarshal(body, &byPriority))
	s.Require().Len(byPriority, 1)
	s.Equal(created.ID, byPriority[0].ID)

	// DELETE /user/{id} confirms with the id embedded
	resp, body = s.delete(idPath)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), fmt.Sprintf("%d", created.ID))
	s.Contains(string(body), "was deleted")

	// Record is gone
	resp, _ = s.get(idPath)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, body = s.get("/user")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("[]", string(body))
}

func (s *UserAPIIntegrationTestSuite) TestUpsertOverwritesWholeRecord() {
	resp, body := s.postUser(`{"name":"A","email":"a@x.com","priority":1}`)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created userJSON
	s.Require().NoError(json.Unmarshal(body, &created))

	// POST with the existing id and only a name: full overwrite, not a merge
	resp, body = s.postUser(fmt.Sprintf(`{"id":%d,"name":"B"}`, created.ID))
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated userJSON
	s.Require().NoError(json.Unmarshal(body, &updated))
	s.Equal(created.ID, updated.ID)
	s.Equal("B", *updated.Name)
	s.Nil(updated.Email)
	s.Nil(updated.Priority)

	// The store agrees
	resp, body = s.get(fmt.Sprintf("/user/%d", created.ID))
	s.Equal(http.StatusOK, resp.StatusCode)
	var got userJSON
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal("B", *got.Name)
	s.Nil(got.Email)
	s.Nil(got.Priority)
}

func (s *UserAPIIntegrationTestSuite) TestQueryReturnsExactPrioritySet() {
	s.postUser(`{"name":"A","priority":1}`)
	s.postUser(`{"name":"B","priority":2}`)
	s.postUser(`{"name":"C","priority":1}`)
	s.postUser(`{"name":"D"}`)

	resp, body := s.get("/user/query?priority=1")
	s.Equal(http.StatusOK, resp.StatusCode)

	var byPriority []userJSON
	s.Require().NoError(json.Unmarshal(body, &byPriority))
	s.Len(byPriority, 2)

	resp, body = s.get("/user/query?priority=9")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("[]", string(body))
}

func (s *UserAPIIntegrationTestSuite) TestDeleteMissingIDIsNotFound() {
	resp, body := s.delete("/user/12345")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(string(body), "12345")
}

func (s *UserAPIIntegrationTestSuite) TestHealthEndpoint() {
	resp, body := s.get("/health")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), "healthy")
}

func TestUserAPIIntegration(t *testing.T) {
	suite.Run(t, new(UserAPIIntegrationTestSuite))
}
