package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/handlers"
	"github.com/mzhuravlev/shopcourse/internal/middleware"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/server"
	"github.com/mzhuravlev/shopcourse/internal/store"
	"github.com/mzhuravlev/shopcourse/internal/types"
)

func newUserRouter(t *testing.T) (*gin.Engine, *store.UserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	users := store.NewUserStore(log, nil)

	router := server.NewUserRouter(server.UserRouterConfig{
		Log:         log,
		Auth:        middleware.NewAuth(log, users),
		Users:       handlers.NewUserHandler(users),
		CORSOrigins: []string{"http://localhost:3000"},
	})
	return router, users
}

func registerDirect(t *testing.T, users *store.UserStore, username string, role types.UserRole) types.User {
	t.Helper()
	user, err := users.Register(types.UserInfo{
		Username: username,
		Name:     "Test User",
		Role:     role,
		Password: "ValidPassword123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func doAuth(t *testing.T, router *gin.Engine, method, path, body, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUserRegistration(t *testing.T) {
	router, _ := newUserRouter(t)

	body := `{"username":"testuser","name":"Test User","birthdate":"2000-01-01T00:00:00","password":"validPassword123"}`
	rec := doAuth(t, router, http.MethodPost, "/user-register", body, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var view types.UserView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.UID != 1 || view.Username != "testuser" || view.Role != types.RoleUser {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestUserRegistrationNeverEchoesPassword(t *testing.T) {
	router, _ := newUserRouter(t)

	body := `{"username":"testuser","name":"Test User","birthdate":"2000-01-01T00:00:00","password":"validPassword123"}`
	rec := doAuth(t, router, http.MethodPost, "/user-register", body, "", "")
	if strings.Contains(rec.Body.String(), "assword") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
}

func TestUserRegistrationShortPassword(t *testing.T) {
	router, _ := newUserRouter(t)

	body := `{"username":"newuser","name":"New User","birthdate":"1995-05-05T00:00:00","password":"short"}`
	rec := doAuth(t, router, http.MethodPost, "/user-register", body, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid password") {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestUserRegistrationDuplicateUsername(t *testing.T) {
	router, _ := newUserRouter(t)

	body := `{"username":"testuser","name":"Test User","birthdate":"2000-01-01T00:00:00","password":"validPassword123"}`
	doAuth(t, router, http.MethodPost, "/user-register", body, "", "")

	rec := doAuth(t, router, http.MethodPost, "/user-register", body, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "username is already taken") {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestUserRegistrationMissingFields(t *testing.T) {
	router, _ := newUserRouter(t)

	rec := doAuth(t, router, http.MethodPost, "/user-register", `{"username":"x"}`, "", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUserGetRequiresAuth(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "testuser", "")

	rec := doAuth(t, router, http.MethodPost, "/user-get?id=1", "", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no credentials: status=%d", rec.Code)
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get?id=1", "", "testuser", "WrongPassword")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status=%d", rec.Code)
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get?id=1", "", "ghost", "ValidPassword123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status=%d", rec.Code)
	}
}

func TestUserGetFilterValidation(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "testuser", "")

	rec := doAuth(t, router, http.MethodPost, "/user-get?id=1&username=testuser", "", "testuser", "ValidPassword123")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("both filters: status=%d", rec.Code)
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get", "", "testuser", "ValidPassword123")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no filters: status=%d", rec.Code)
	}
}

func TestUserGetVisibility(t *testing.T) {
	router, users := newUserRouter(t)
	admin := registerDirect(t, users, "admin_user", types.RoleAdmin)
	user1 := registerDirect(t, users, "user1", "")
	user2 := registerDirect(t, users, "user2", "")
	_ = admin

	// Admin sees everyone.
	rec := doAuth(t, router, http.MethodPost, "/user-get?id=2", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "user1") {
		t.Fatalf("admin by id: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get?username=user2", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "user2") {
		t.Fatalf("admin by username: status=%d body=%s", rec.Code, rec.Body.String())
	}

	// A user sees itself.
	rec = doAuth(t, router, http.MethodPost, "/user-get?id=2", "", "user1", "ValidPassword123")
	if rec.Code != http.StatusOK {
		t.Fatalf("self by id: status=%d", rec.Code)
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get?username=user1", "", "user1", "ValidPassword123")
	if rec.Code != http.StatusOK {
		t.Fatalf("self by username: status=%d", rec.Code)
	}

	// A user hitting somebody else's record gets an internal error, the
	// status existing clients expect.
	rec = doAuth(t, router, http.MethodPost, "/user-get?id=3", "", "user1", "ValidPassword123")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("other by id: status=%d", rec.Code)
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get?username=user2", "", "user1", "ValidPassword123")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("other by username: status=%d", rec.Code)
	}
	_, _ = user1, user2
}

func TestUserGetUnknownTarget(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "admin_user", types.RoleAdmin)

	rec := doAuth(t, router, http.MethodPost, "/user-get?username=non_existent_user", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("by username: status=%d", rec.Code)
	}
	rec = doAuth(t, router, http.MethodPost, "/user-get?id=9999", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("by id: status=%d", rec.Code)
	}
}

func TestPromoteUser(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "admin_user", types.RoleAdmin)
	target := registerDirect(t, users, "user1", "")

	rec := doAuth(t, router, http.MethodPost, "/user-promote?id=2", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	promoted, _ := users.GetByID(target.UID)
	if promoted.Info.Role != types.RoleAdmin {
		t.Fatalf("role=%q want=admin", promoted.Info.Role)
	}

	// PUT works too.
	rec = doAuth(t, router, http.MethodPut, "/user-promote?id=2", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusOK {
		t.Fatalf("put: status=%d", rec.Code)
	}
}

func TestPromoteRequiresAdmin(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "user1", "")
	registerDirect(t, users, "user2", "")

	rec := doAuth(t, router, http.MethodPost, "/user-promote?id=2", "", "user1", "ValidPassword123")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d", rec.Code)
	}
	target, _ := users.GetByUsername("user2")
	if target.Info.Role != types.RoleUser {
		t.Fatalf("role changed despite 403")
	}
}

func TestPromoteUnknownUser(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "admin_user", types.RoleAdmin)

	rec := doAuth(t, router, http.MethodPost, "/user-promote?id=9999", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if _, ok := users.GetByID(9999); ok {
		t.Fatalf("failed promote must not create a user")
	}
}

func TestPromoteMissingID(t *testing.T) {
	router, users := newUserRouter(t)
	registerDirect(t, users, "admin_user", types.RoleAdmin)

	rec := doAuth(t, router, http.MethodPost, "/user-promote", "", "admin_user", "ValidPassword123")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rec.Code)
	}
}
