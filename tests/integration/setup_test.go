package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"midas/internal/feed"
	"midas/internal/handlers"
	"midas/internal/logger"
	"midas/internal/middleware"
	"midas/internal/models"
	"midas/internal/ratelimit"
	"midas/internal/services"
	"midas/internal/validator"
)

const testPipelineKey = "integration-pipeline-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Feed   *fakeFeed
}

// fakeFeed is a stub upstream feed server. Tests mutate Records between
// refresh calls to simulate successive days; setting Fail makes the
// endpoint return 502.
type fakeFeed struct {
	Server  *httptest.Server
	Records []map[string]interface{}
	Fail    bool
}

func newFakeFeed() *fakeFeed {
	f := &fakeFeed{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.Fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.Records)
	}))
	return f
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
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Entity{},
		&models.WealthSnapshot{},
		&models.UnitCost{},
		&models.CalculatedComparison{},
		&models.UpdateRun{},
		&models.Setting{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a fake upstream feed.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	fakeFeed := newFakeFeed()
	t.Cleanup(fakeFeed.Server.Close)

	// Services
	settingsService := services.NewSettingsService(db)
	if err := settingsService.Seed(); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	userService := services.NewUserService(db)
	entityService := services.NewEntityService(db)
	snapshotService := services.NewSnapshotService(db)
	catalogService := services.NewCatalogService(db)
	comparisonService := services.NewComparisonService(db, catalogService, snapshotService, settingsService)
	statsService := services.NewStatsService(db, snapshotService, settingsService)

	feedClient := feed.NewClient(fakeFeed.Server.URL, &http.Client{Timeout: 5 * time.Second})
	ingestService := services.NewIngestService(db, feedClient, entityService, snapshotService, comparisonService, settingsService)

	refreshLimiter := ratelimit.NewIntervalLimiter(0)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	entityHandler := handlers.NewEntityHandler(entityService, snapshotService, comparisonService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, settingsService)
	statsHandler := handlers.NewStatsHandler(statsService, comparisonService)
	pipelineHandler := handlers.NewPipelineHandler(ingestService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", authHandler.Login)

	entities := v1.Group("/entities")
	entities.GET("", entityHandler.ListEntities)
	entities.GET("/:slug", entityHandler.GetEntity)
	entities.GET("/:slug/history", entityHandler.GetHistory)
	entities.GET("/:slug/comparisons", entityHandler.GetComparisons)

	v1.GET("/stats", statsHandler.GetFleetStats)
	v1.GET("/comparisons/preview", statsHandler.PreviewComparisons)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(testPipelineKey))
	pipeline.GET("/refresh", middleware.RateGate(refreshLimiter, "refresh"), pipelineHandler.Refresh)
	pipeline.GET("/runs", pipelineHandler.ListRuns)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.GET("/profile", authHandler.GetProfile)
	admin.POST("/costs", catalogHandler.CreateUnitCost)
	admin.GET("/costs", catalogHandler.ListUnitCosts)
	admin.PUT("/costs/:id", catalogHandler.UpdateUnitCost)
	admin.DELETE("/costs/:id", catalogHandler.DeleteUnitCost)
	admin.GET("/settings", catalogHandler.ListSettings)
	admin.PUT("/settings/:key", catalogHandler.UpdateSetting)

	return &testApp{DB: db, Router: router, Feed: fakeFeed}
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

// pipelineRequest makes a request authenticated with the pipeline API key.
func (app *testApp) pipelineRequest(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	req.Header.Set("X-API-Key", testPipelineKey)
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

// createAdmin inserts an admin account directly and returns a login token.
func (app *testApp) createAdmin(t *testing.T, email, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Email: email, Password: string(hash), IsActive: true}
	if err := app.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	token, _ := result["token"].(string)
	if token == "" {
		t.Fatal("expected a login token")
	}
	return token
}

// seedCatalog creates one active global catalog entry via the admin API.
func (app *testApp) seedCatalog(t *testing.T, token string, costCents int64) string {
	t.Helper()

	body := fmt.Sprintf(`{
		"name": "Teacher salary",
		"cost": %d,
		"unit": "teacher-year",
		"unit_plural": "teacher-years",
		"region": "global",
		"category": "education"
	}`, costCents)
	rec := app.request("POST", "/api/v1/admin/costs", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seeding catalog failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	cost := result["unit_cost"].(map[string]interface{})
	return cost["id"].(string)
}

// feedRecord builds one upstream feed entry. Worth is in millions of USD.
func feedRecord(uri, name string, worthMillions float64, rank int) map[string]interface{} {
	return map[string]interface{}{
		"uri":                  uri,
		"personName":           name,
		"finalWorth":           worthMillions,
		"rank":                 rank,
		"countryOfCitizenship": "United States",
		"industries":           []string{"Technology"},
		"source":               "integration",
	}
}
