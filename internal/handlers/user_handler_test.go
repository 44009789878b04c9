package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("0198f1a2-0000-7000-8000-00000000000a"))
	auth.GET("/users", handler.GetAllUsers)
	auth.GET("/user/:id", handler.GetUserByID)
	auth.DELETE("/user/:id", handler.DeleteUser)
	return r
}

func TestUserHandler_GetAllUsers(t *testing.T) {
	userSvc := &mockUserService{
		getAllUsersFn: func() ([]models.User, error) {
			return []models.User{
				{Base: models.Base{ID: "u1"}, Name: "alice"},
				{Base: models.Base{ID: "u2"}, Name: "bob"},
			}, nil
		},
	}
	handler := NewUserHandler(userSvc, &mockAuditService{})
	r := setupUserRouter(handler)

	rec := doRequest(r, "GET", "/users", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	users := result["users"].([]interface{})
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
	first := users[0].(map[string]interface{})
	if _, ok := first["password"]; ok {
		t.Error("password must never appear in responses")
	}
}

func TestUserHandler_GetUserByID(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Name: "alice"}, nil
			},
		}
		handler := NewUserHandler(userSvc, &mockAuditService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "GET", "/user/u1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["name"] != "alice" {
			t.Errorf("expected alice, got %v", user["name"])
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewUserHandler(userSvc, &mockAuditService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "GET", "/user/unknown", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{}, &mockAuditService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "DELETE", "/user/u1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "User deleted" {
			t.Errorf("unexpected message: %v", result["message"])
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		userSvc := &mockUserService{
			deleteUserFn: func(id string) error { return apperrors.ErrUserNotFound },
		}
		handler := NewUserHandler(userSvc, &mockAuditService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "DELETE", "/user/unknown", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when user owns records", func(t *testing.T) {
		userSvc := &mockUserService{
			deleteUserFn: func(id string) error { return apperrors.ErrUserHasRecords },
		}
		handler := NewUserHandler(userSvc, &mockAuditService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "DELETE", "/user/u1", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}
