package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/primary/rest"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/media"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/security"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/services"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/testsupport"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	generator *media.Generator
}

// newTestServer câble la vraie stack de services sur les repos en mémoire.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := testsupport.NewMemUserRepo()
	friends := testsupport.NewMemFriendRepo()
	posts := testsupport.NewMemPostRepo()
	comments := testsupport.NewMemCommentRepo()
	likes := testsupport.NewMemLikeRepo()
	publisher := testsupport.NewMemPublisher()

	hasher := security.NewArgon2Hasher(&security.Argon2Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	tokens := security.NewJWTProvider("test-secret")
	generator := media.NewGenerator("/static/uploads")

	relations := services.NewRelationshipService(friends, users, publisher)
	engagement := services.NewEngagementService(likes, posts, publisher)
	feed := services.NewFeedService(posts, comments, users, engagement, publisher, 10, 100)
	identity := services.NewIdentityService(users, hasher, tokens)

	handlers := rest.NewHandlers(relations, engagement, feed, identity, tokens, generator)
	return &testServer{
		router:    rest.NewRouter(handlers),
		generator: generator,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

// register crée un compte via l'API et renvoie (userID, token).
func (s *testServer) register(t *testing.T, email, name string) (string, string) {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    email,
		"password": "s3cret-pass",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	userID, token := s.register(t, "alice@example.com", "Alice")
	assert.NotEmpty(t, userID)
	assert.NotEmpty(t, token)

	// Email déjà pris.
	rec, _ := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login OK.
	rec, body := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])

	// Mauvais mot de passe.
	rec, _ = s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Body incomplet.
	rec, _ = s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndPatchUser(t *testing.T) {
	s := newTestServer(t)
	userID, _ := s.register(t, "alice@example.com", "Alice")

	rec, body := s.do(t, http.MethodGet, "/api/users/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", body["email"])

	rec, body = s.do(t, http.MethodPatch, "/api/users/"+userID, gin.H{"bio": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", body["bio"])
	assert.Equal(t, "Alice", body["name"])

	rec, _ = s.do(t, http.MethodGet, "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFriendFlow(t *testing.T) {
	s := newTestServer(t)
	aliceID, _ := s.register(t, "alice@example.com", "Alice")
	bobID, _ := s.register(t, "bob@example.com", "Bob")

	// Envoi de la demande.
	rec, body := s.do(t, http.MethodPost, "/api/friends/request", gin.H{
		"userId": aliceID, "friendId": bobID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	requestID := body["id"].(string)
	assert.Equal(t, "pending", body["status"])

	// Doublon, même en direction inverse : 400.
	rec, _ = s.do(t, http.MethodPost, "/api/friends/request", gin.H{
		"userId": bobID, "friendId": aliceID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Self-edge : 400.
	rec, _ = s.do(t, http.MethodPost, "/api/friends/request", gin.H{
		"userId": aliceID, "friendId": aliceID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Cible inconnue : 404.
	rec, _ = s.do(t, http.MethodPost, "/api/friends/request", gin.H{
		"userId": aliceID, "friendId": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Bob voit la demande avec le résumé d'Alice.
	rec, body = s.do(t, http.MethodGet, "/api/friends/requests?user_id="+bobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	requests := body["requests"].([]any)
	require.Len(t, requests, 1)
	first := requests[0].(map[string]any)
	assert.Equal(t, requestID, first["id"])
	assert.Equal(t, "Alice", first["user"].(map[string]any)["name"])

	// Seul le destinataire accepte.
	rec, _ = s.do(t, http.MethodPost, "/api/friends/accept", gin.H{
		"userId": aliceID, "requestId": requestID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = s.do(t, http.MethodPost, "/api/friends/accept", gin.H{
		"userId": bobID, "requestId": requestID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "accepted", body["friendship"].(map[string]any)["status"])

	// Double acceptation : 400.
	rec, _ = s.do(t, http.MethodPost, "/api/friends/accept", gin.H{
		"userId": bobID, "requestId": requestID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// L'amitié est visible des deux côtés, une seule fois.
	rec, body = s.do(t, http.MethodGet, "/api/friends?user_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends := body["friends"].([]any)
	require.Len(t, friends, 1)
	assert.Equal(t, bobID, friends[0].(map[string]any)["id"])

	rec, body = s.do(t, http.MethodGet, "/api/friends?user_id="+bobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["friends"].([]any), 1)
}

func TestSuggestions(t *testing.T) {
	s := newTestServer(t)
	aliceID, _ := s.register(t, "alice@example.com", "Alice")
	bobID, _ := s.register(t, "bob@example.com", "Bob")
	s.register(t, "carol@example.com", "Carol")

	rec, _ := s.do(t, http.MethodPost, "/api/friends/request", gin.H{
		"userId": aliceID, "friendId": bobID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Bob est connecté (pending) : seule Carol est suggérée.
	rec, body := s.do(t, http.MethodGet, "/api/friends/suggestions?user_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	suggestions := body["suggestions"].([]any)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Carol", suggestions[0].(map[string]any)["name"])

	// user_id manquant : 400.
	rec, _ = s.do(t, http.MethodGet, "/api/friends/suggestions", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t)
	userID, _ := s.register(t, "alice@example.com", "Alice")

	rec, body := s.do(t, http.MethodPost, "/api/posts", gin.H{
		"userName":    "Alice",
		"userHandle":  "alice",
		"description": "first post",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	postID := body["id"].(string)
	assert.Equal(t, "first post", body["description"])
	assert.Equal(t, float64(0), body["likes"])

	rec, body = s.do(t, http.MethodGet, "/api/posts/"+postID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", body["userHandle"])

	// Like puis unlike.
	rec, body = s.do(t, http.MethodPost, "/api/posts/"+postID+"/like", gin.H{"userId": userID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likes"])
	assert.Equal(t, "Post liked", body["message"])

	rec, body = s.do(t, http.MethodPost, "/api/posts/"+postID+"/like", gin.H{"userId": userID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likes"])
	assert.Equal(t, "Post unliked", body["message"])

	// Post inconnu : 404.
	rec, _ = s.do(t, http.MethodPost, "/api/posts/ghost/like", gin.H{"userId": userID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Suppression.
	rec, _ = s.do(t, http.MethodDelete, "/api/posts/"+postID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/posts/"+postID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPosts_Envelope(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 25; i++ {
		rec, _ := s.do(t, http.MethodPost, "/api/posts", gin.H{
			"userName":   fmt.Sprintf("User %d", i),
			"userHandle": fmt.Sprintf("user%d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := s.do(t, http.MethodGet, "/api/posts?page=2&per_page=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, body["posts"].([]any), 10)
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(3), body["pages"])
	assert.Equal(t, true, body["has_next"])
	assert.Equal(t, true, body["has_prev"])
}

func TestListPosts_ViewerFromBearer(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.register(t, "alice@example.com", "Alice")

	rec, body := s.do(t, http.MethodPost, "/api/posts", gin.H{
		"userName": "Alice", "userHandle": "alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := body["id"].(string)

	rec, _ = s.do(t, http.MethodPost, "/api/posts/"+postID+"/like", gin.H{"userId": userID})
	require.Equal(t, http.StatusOK, rec.Code)

	// Le viewer vient du bearer token : hasLiked annoté.
	rec, body = s.do(t, http.MethodGet, "/api/posts", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, true, posts[0].(map[string]any)["hasLiked"])

	// Anonyme : pas d'annotation.
	rec, body = s.do(t, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["posts"].([]any)[0].(map[string]any)["hasLiked"])
}

func TestCommentFlow(t *testing.T) {
	s := newTestServer(t)
	userID, _ := s.register(t, "bob@example.com", "Bob")

	rec, body := s.do(t, http.MethodPost, "/api/posts", gin.H{
		"userName": "Alice", "userHandle": "alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := body["id"].(string)

	rec, body = s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", gin.H{
		"content": "great post", "userId": userID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	commentID := body["id"].(string)

	// Contenu vide : 400.
	rec, _ = s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", gin.H{
		"content": "  ", "userId": userID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Listing avec auteur résolu et enveloppe.
	rec, body = s.do(t, http.MethodGet, "/api/posts/"+postID+"/comments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	first := comments[0].(map[string]any)
	assert.Equal(t, "great post", first["content"])
	assert.Equal(t, "Bob", first["userName"])
	assert.Equal(t, "bob", first["userHandle"])
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["page"])

	// Suppression via le mauvais post : 400.
	rec, body = s.do(t, http.MethodPost, "/api/posts", gin.H{
		"userName": "Carol", "userHandle": "carol",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	otherPostID := body["id"].(string)

	rec, _ = s.do(t, http.MethodDelete, "/api/posts/"+otherPostID+"/comments/"+commentID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/posts/"+postID+"/comments/"+commentID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/posts/"+postID+"/comments/"+commentID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateImage(t *testing.T) {
	s := newTestServer(t)

	// Pipeline non initialisé : 503.
	rec, _ := s.do(t, http.MethodPost, "/api/image/generate", gin.H{"prompt": "a sunset"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.generator.Init(func(_ context.Context, _ string) ([]byte, error) {
		return []byte("png-bytes"), nil
	})

	rec, body := s.do(t, http.MethodPost, "/api/image/generate", gin.H{"prompt": "a sunset"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["image_url"])
	assert.NotEmpty(t, body["base64"])

	// Prompt vide : 400.
	rec, _ = s.do(t, http.MethodPost, "/api/image/generate", gin.H{"prompt": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
