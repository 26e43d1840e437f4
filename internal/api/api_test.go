package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/causeshare-api/internal/api"
	"github.com/causeshare-api/internal/config"
	"github.com/causeshare-api/internal/mocks"
	"github.com/causeshare-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupTestRouter() (*gin.Engine, *mocks.MockUserRepository, *mocks.MockPostRepository) {
	gin.SetMode(gin.TestMode)

	repos, users, posts := mocks.NewRepositories()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth: config.AuthConfig{
			SessionSecret: "test-secret",
			SessionTTL:    time.Hour,
			CookieName:    "session",
		},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, log)
	router := api.NewRouter(services, cfg, log)

	return router, users, posts
}

func registerUser(t *testing.T, router *gin.Engine, email, password, role string) {
	t.Helper()

	body := map[string]string{
		"username":   strings.SplitN(email, "@", 2)[0],
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   password,
		"role":       role,
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed with status %d: %s", w.Code, w.Body.String())
	}
}

func login(t *testing.T, router *gin.Engine, email, password string) *http.Cookie {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Login failed with status %d: %s", w.Code, w.Body.String())
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("Login response did not set a session cookie")
	return nil
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "causeshare-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestGuard_AnonymousRedirectedToLogin(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/admin/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302 redirect, got %d", w.Code)
	}

	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?next=") {
		t.Errorf("Expected redirect to /login with next param, got %s", location)
	}
	if !strings.Contains(location, "%2Fadmin%2Fusers") {
		t.Errorf("Expected intended destination preserved, got %s", location)
	}
}

func TestGuard_WrongRoleRedirectedToLogin(t *testing.T) {
	router, _, _ := setupTestRouter()

	registerUser(t, router, "plain@b.com", "pw1", "user")
	cookie := login(t, router, "plain@b.com", "pw1")

	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Same redirect as unauthenticated, no distinct forbidden signal
	if w.Code != http.StatusFound {
		t.Errorf("Expected 302 redirect for wrong role, got %d", w.Code)
	}
}

func TestGuard_AdminAllowed(t *testing.T) {
	router, _, _ := setupTestRouter()

	registerUser(t, router, "boss@b.com", "pw1", "admin")
	cookie := login(t, router, "boss@b.com", "pw1")

	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, users, _ := setupTestRouter()

	registerUser(t, router, "a@b.com", "pw1", "user")

	payload, _ := json.Marshal(map[string]string{
		"username": "other", "first_name": "O", "last_name": "U",
		"email": "a@b.com", "password": "pw2", "role": "user",
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d", w.Code)
	}
	if len(users.Users) != 1 {
		t.Errorf("Expected 1 user after duplicate rejection, got %d", len(users.Users))
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	router, _, _ := setupTestRouter()

	registerUser(t, router, "a@b.com", "pw1", "user")

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "a@b.com", "wrong"},
		{"unknown email", "nobody@b.com", "pw1"},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, _ := json.Marshal(map[string]string{"email": tt.email, "password": tt.pass})
			req := httptest.NewRequest("POST", "/login", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			messages = append(messages, response["error"].(string))
		})
	}

	if len(messages) == 2 && messages[0] != messages[1] {
		t.Error("Unknown email and wrong password must produce the same message")
	}
}

func TestLogin_PreservesNextDestination(t *testing.T) {
	router, _, _ := setupTestRouter()
	registerUser(t, router, "a@b.com", "pw1", "contributor")

	payload, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "pw1"})
	req := httptest.NewRequest("POST", "/login?next=/share", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["next"] != "/share" {
		t.Errorf("Expected next '/share', got %v", response["next"])
	}

	// An absolute URL never survives as a redirect target
	req = httptest.NewRequest("POST", "/login?next=https://evil.example", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &response)
	if response["next"] != "/" {
		t.Errorf("Expected off-site next to fall back to '/', got %v", response["next"])
	}
}

func TestAdminSessionLifecycle(t *testing.T) {
	router, _, _ := setupTestRouter()

	// register -> login -> admin listing -> logout -> redirected
	registerUser(t, router, "a@b.com", "pw1", "admin")
	cookie := login(t, router, "a@b.com", "pw1")

	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin listing, got %d", w.Code)
	}

	var listing map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &listing)
	if len(listing["users"].([]interface{})) != 1 {
		t.Errorf("Expected 1 user in listing, got %v", listing["users"])
	}
	if len(listing["roles"].([]interface{})) != 3 {
		t.Errorf("Expected 3 roles in listing, got %v", listing["roles"])
	}

	// Logout clears the session cookie
	req = httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Logout failed with %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Logout should clear the session cookie")
	}

	// Without the session the same listing redirects to login
	req = httptest.NewRequest("GET", "/admin/users", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Expected 302 after logout, got %d", w.Code)
	}
}

func TestPostLifecycle(t *testing.T) {
	router, _, posts := setupTestRouter()

	registerUser(t, router, "writer@b.com", "pw1", "contributor")
	registerUser(t, router, "boss@b.com", "pw1", "admin")
	writer := login(t, router, "writer@b.com", "pw1")
	boss := login(t, router, "boss@b.com", "pw1")

	// Contributor creates a post; the author comes from the session even
	// if the payload smuggles a username field
	payload, _ := json.Marshal(map[string]string{
		"title":        "Save the Bees",
		"organization": "Green Earth",
		"cause":        "Environment",
		"link":         "https://example.org",
		"description":  "Support pollinators.",
		"username":     "someone-else",
	})
	req := httptest.NewRequest("POST", "/share/posts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(writer)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create post failed with %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Post struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"post"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Post.Username != "writer" {
		t.Errorf("Expected author 'writer' from session, got '%s'", created.Post.Username)
	}

	// Duplicate title is rejected, collection unchanged
	req = httptest.NewRequest("POST", "/share/posts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(writer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate title, got %d", w.Code)
	}
	if len(posts.Posts) != 1 {
		t.Errorf("Expected 1 post after duplicate rejection, got %d", len(posts.Posts))
	}

	// Anyone can read
	req = httptest.NewRequest("GET", "/posts/"+created.Post.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 reading post, got %d", w.Code)
	}

	// Contributor cannot delete, only admin can
	req = httptest.NewRequest("DELETE", "/admin/posts/"+created.Post.ID, nil)
	req.AddCookie(writer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Errorf("Expected 302 for contributor delete, got %d", w.Code)
	}

	req = httptest.NewRequest("DELETE", "/admin/posts/"+created.Post.ID, nil)
	req.AddCookie(boss)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin delete, got %d", w.Code)
	}

	// Deleting again reports not found
	req = httptest.NewRequest("DELETE", "/admin/posts/"+created.Post.ID, nil)
	req.AddCookie(boss)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting missing post, got %d", w.Code)
	}
}

func TestMyAccount_OwnershipEnforced(t *testing.T) {
	router, users, _ := setupTestRouter()

	registerUser(t, router, "alice@b.com", "pw1", "user")
	registerUser(t, router, "bob@b.com", "pw1", "user")
	alice := login(t, router, "alice@b.com", "pw1")

	var aliceID, bobID string
	for id, u := range users.Users {
		switch u.Email {
		case "alice@b.com":
			aliceID = id
		case "bob@b.com":
			bobID = id
		}
	}

	payload, _ := json.Marshal(map[string]string{
		"username": "alice", "first_name": "Alice", "last_name": "A",
		"email": "alice@b.com", "password": "pw1", "role": "user",
	})

	// Editing someone else's account is forbidden
	req := httptest.NewRequest("PUT", "/my-account/"+bobID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(alice)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 editing another account, got %d", w.Code)
	}

	// Editing your own account works
	req = httptest.NewRequest("PUT", "/my-account/"+aliceID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(alice)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 editing own account, got %d: %s", w.Code, w.Body.String())
	}

	// A user cannot promote themselves through the account form
	promote, _ := json.Marshal(map[string]string{
		"username": "alice", "first_name": "Alice", "last_name": "A",
		"email": "alice@b.com", "password": "pw1", "role": "admin",
	})
	req = httptest.NewRequest("PUT", "/my-account/"+aliceID, bytes.NewReader(promote))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(alice)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for self-promotion, got %d", w.Code)
	}
}

func TestAdminUserManagement(t *testing.T) {
	router, users, _ := setupTestRouter()

	registerUser(t, router, "boss@b.com", "pw1", "admin")
	boss := login(t, router, "boss@b.com", "pw1")

	// Admin adds a user
	payload, _ := json.Marshal(map[string]string{
		"username": "carol", "first_name": "Carol", "last_name": "C",
		"email": "carol@b.com", "password": "pw1", "role": "contributor",
	})
	req := httptest.NewRequest("POST", "/admin/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(boss)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Admin add user failed with %d: %s", w.Code, w.Body.String())
	}

	var carolID string
	for id, u := range users.Users {
		if u.Email == "carol@b.com" {
			carolID = id
		}
	}

	// Admin edits any account
	edit, _ := json.Marshal(map[string]string{
		"username": "carol", "first_name": "Caroline", "last_name": "C",
		"email": "carol@b.com", "password": "pw1", "role": "contributor",
	})
	req = httptest.NewRequest("PUT", "/admin/users/"+carolID, bytes.NewReader(edit))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(boss)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Admin edit failed with %d: %s", w.Code, w.Body.String())
	}
	if users.Users[carolID].FirstName != "Caroline" {
		t.Errorf("Expected first name updated, got '%s'", users.Users[carolID].FirstName)
	}

	// Admin deletes the account; a second delete is not found
	req = httptest.NewRequest("DELETE", "/admin/users/"+carolID, nil)
	req.AddCookie(boss)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 deleting user, got %d", w.Code)
	}

	req = httptest.NewRequest("DELETE", "/admin/users/"+carolID, nil)
	req.AddCookie(boss)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting missing user, got %d", w.Code)
	}
}

func TestCausesPublic(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/causes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response["causes"].([]interface{})) == 0 {
		t.Error("Expected seeded causes")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	router, _, _ := setupTestRouter()

	payload, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing fields, got %d", w.Code)
	}
}
