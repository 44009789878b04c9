package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"spendlog/internal/handlers"
	"spendlog/internal/logger"
	"spendlog/internal/middleware"
	"spendlog/internal/models"
	"spendlog/internal/services"
	"spendlog/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Currency{},
		&models.User{},
		&models.Category{},
		&models.Record{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	currencyService := services.NewCurrencyService(db)
	categoryService := services.NewCategoryService(db)
	recordService := services.NewRecordService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	recordHandler := handlers.NewRecordHandler(recordService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/register", authHandler.Register)
	v1.POST("/login", authHandler.Login)
	v1.GET("/currency", currencyHandler.GetCurrencies)
	v1.POST("/currency", currencyHandler.CreateCurrency)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/users", userHandler.GetAllUsers)
	protected.GET("/user/:id", userHandler.GetUserByID)
	protected.DELETE("/user/:id", userHandler.DeleteUser)

	protected.GET("/category", categoryHandler.GetCategories)
	protected.POST("/category", categoryHandler.CreateCategory)
	protected.DELETE("/category/:id", categoryHandler.DeleteCategory)

	protected.GET("/record", recordHandler.ListRecords)
	protected.POST("/record", recordHandler.CreateRecord)
	protected.GET("/record/:id", recordHandler.GetRecordByID)
	protected.DELETE("/record/:id", recordHandler.DeleteRecord)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns its ID. Registration does not
// issue a token; call loginUser for one.
func (app *testApp) registerUser(t *testing.T, name, password string) (userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"password":%q}`, name, password)
	rec := app.request("POST", "/api/v1/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return user["id"].(string)
}

// loginUser logs in and returns the access token.
func (app *testApp) loginUser(t *testing.T, name, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"password":%q}`, name, password)
	rec := app.request("POST", "/api/v1/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string)
}

// registerAndLogin registers a fresh user and returns its ID and an access token.
func (app *testApp) registerAndLogin(t *testing.T, name string) (userID, token string) {
	t.Helper()
	userID = app.registerUser(t, name, "password123")
	token = app.loginUser(t, name, "password123")
	return userID, token
}

// createCurrency creates a currency and returns its numeric ID.
func (app *testApp) createCurrency(t *testing.T, code string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/currency", fmt.Sprintf(`{"name":%q}`, code), "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create currency failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	currency := result["currency"].(map[string]interface{})
	return currency["id"].(float64)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, token, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/category", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(string)
}

// assertErrorCode checks the error envelope code in a response.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if errObj["code"] != want {
		t.Errorf("expected error code %s, got %v", want, errObj["code"])
	}
}
