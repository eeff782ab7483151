package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "midas/internal/errors"
	"midas/internal/models"
	"midas/internal/pagination"
	"midas/internal/services"
)

// --- mock catalog service ---

type mockCatalogService struct {
	createUnitCostFn  func(input services.UnitCostInput) (*models.UnitCost, error)
	updateUnitCostFn  func(id string, input services.UnitCostInput) (*models.UnitCost, error)
	deleteUnitCostFn  func(id string) error
	getUnitCostByIDFn func(id string) (*models.UnitCost, error)
	listUnitCostsFn   func(page pagination.PageRequest) (*pagination.PageResponse[models.UnitCost], error)
	activeCostsFn     func(requested string) ([]models.UnitCost, models.Region, error)
	allActiveCostsFn  func() ([]models.UnitCost, error)
}

func (m *mockCatalogService) CreateUnitCost(input services.UnitCostInput) (*models.UnitCost, error) {
	if m.createUnitCostFn != nil {
		return m.createUnitCostFn(input)
	}
	return &models.UnitCost{}, nil
}

func (m *mockCatalogService) UpdateUnitCost(id string, input services.UnitCostInput) (*models.UnitCost, error) {
	if m.updateUnitCostFn != nil {
		return m.updateUnitCostFn(id, input)
	}
	return &models.UnitCost{}, nil
}

func (m *mockCatalogService) DeleteUnitCost(id string) error {
	if m.deleteUnitCostFn != nil {
		return m.deleteUnitCostFn(id)
	}
	return nil
}

func (m *mockCatalogService) GetUnitCostByID(id string) (*models.UnitCost, error) {
	if m.getUnitCostByIDFn != nil {
		return m.getUnitCostByIDFn(id)
	}
	return &models.UnitCost{}, nil
}

func (m *mockCatalogService) ListUnitCosts(page pagination.PageRequest) (*pagination.PageResponse[models.UnitCost], error) {
	if m.listUnitCostsFn != nil {
		return m.listUnitCostsFn(page)
	}
	resp := pagination.NewPageResponse([]models.UnitCost{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCatalogService) ActiveCosts(requested string) ([]models.UnitCost, models.Region, error) {
	if m.activeCostsFn != nil {
		return m.activeCostsFn(requested)
	}
	return []models.UnitCost{}, models.DefaultRegion, nil
}

func (m *mockCatalogService) AllActiveCosts() ([]models.UnitCost, error) {
	if m.allActiveCostsFn != nil {
		return m.allActiveCostsFn()
	}
	return []models.UnitCost{}, nil
}

var _ services.CatalogServicer = (*mockCatalogService)(nil)

// --- mock settings service ---

type mockSettingsService struct {
	getFn  func(key string) (string, error)
	setFn  func(key, value string) (*models.Setting, error)
	listFn func() ([]models.Setting, error)
}

func (m *mockSettingsService) Seed() error { return nil }

func (m *mockSettingsService) Get(key string) (string, error) {
	if m.getFn != nil {
		return m.getFn(key)
	}
	return "", nil
}

func (m *mockSettingsService) GetInt64(key string, fallback int64) int64 { return fallback }

func (m *mockSettingsService) GetBool(key string, fallback bool) bool { return fallback }

func (m *mockSettingsService) Set(key, value string) (*models.Setting, error) {
	if m.setFn != nil {
		return m.setFn(key, value)
	}
	return &models.Setting{Key: key, Value: value}, nil
}

func (m *mockSettingsService) List() ([]models.Setting, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return []models.Setting{}, nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func setupCatalogRouter(handler *CatalogHandler) *gin.Engine {
	r := gin.New()
	admin := r.Group("/admin", injectUserID("019098a0-0000-7000-8000-000000000001"))
	admin.POST("/costs", handler.CreateUnitCost)
	admin.GET("/costs", handler.ListUnitCosts)
	admin.PUT("/costs/:id", handler.UpdateUnitCost)
	admin.DELETE("/costs/:id", handler.DeleteUnitCost)
	admin.GET("/settings", handler.ListSettings)
	admin.PUT("/settings/:key", handler.UpdateSetting)
	return r
}

const validUnitCostBody = `{
	"name": "Teacher salary",
	"cost": 1500000,
	"unit": "teacher-year",
	"unit_plural": "teacher-years",
	"region": "global",
	"category": "education"
}`

// --- tests ---

func TestCatalogHandler_CreateUnitCost(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		catalogSvc := &mockCatalogService{
			createUnitCostFn: func(input services.UnitCostInput) (*models.UnitCost, error) {
				return &models.UnitCost{
					Base: models.Base{ID: "019098a0-0000-7000-8000-000000000002"},
					Name: input.Name,
					Cost: input.Cost,
				}, nil
			},
		}
		handler := NewCatalogHandler(catalogSvc, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "POST", "/admin/costs", validUnitCostBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		cost, ok := result["unit_cost"].(map[string]interface{})
		if !ok {
			t.Fatal("expected unit_cost object in response")
		}
		if cost["name"] != "Teacher salary" {
			t.Errorf("expected name Teacher salary, got %v", cost["name"])
		}
	})

	t.Run("rejects non-positive cost at binding", func(t *testing.T) {
		handler := NewCatalogHandler(&mockCatalogService{}, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "POST", "/admin/costs",
			`{"name":"Free thing","cost":0,"unit":"unit","region":"global","category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("rejects unknown region at binding", func(t *testing.T) {
		handler := NewCatalogHandler(&mockCatalogService{}, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "POST", "/admin/costs",
			`{"name":"Thing","cost":100,"unit":"unit","region":"atlantis","category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects unknown category at binding", func(t *testing.T) {
		handler := NewCatalogHandler(&mockCatalogService{}, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "POST", "/admin/costs",
			`{"name":"Thing","cost":100,"unit":"unit","region":"global","category":"mystery"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCatalogHandler_UpdateUnitCost(t *testing.T) {
	t.Run("returns 404 for unknown id", func(t *testing.T) {
		catalogSvc := &mockCatalogService{
			updateUnitCostFn: func(id string, input services.UnitCostInput) (*models.UnitCost, error) {
				return nil, apperrors.ErrUnitCostNotFound
			},
		}
		handler := NewCatalogHandler(catalogSvc, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "PUT", "/admin/costs/unknown", validUnitCostBody)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNIT_COST_NOT_FOUND")
	})
}

func TestCatalogHandler_DeleteUnitCost(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewCatalogHandler(&mockCatalogService{}, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "DELETE", "/admin/costs/some-id", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}

func TestCatalogHandler_UpdateSetting(t *testing.T) {
	t.Run("updates a value", func(t *testing.T) {
		var gotKey, gotValue string
		settingsSvc := &mockSettingsService{
			setFn: func(key, value string) (*models.Setting, error) {
				gotKey, gotValue = key, value
				return &models.Setting{Key: key, Value: value}, nil
			},
		}
		handler := NewCatalogHandler(&mockCatalogService{}, settingsSvc)
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "PUT", "/admin/settings/top_n_limit", `{"value":"100"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotKey != "top_n_limit" || gotValue != "100" {
			t.Errorf("expected top_n_limit=100, got %s=%s", gotKey, gotValue)
		}
	})

	t.Run("rejects missing value", func(t *testing.T) {
		handler := NewCatalogHandler(&mockCatalogService{}, &mockSettingsService{})
		r := setupCatalogRouter(handler)

		rec := doRequest(r, "PUT", "/admin/settings/top_n_limit", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCatalogHandler_ListSettings(t *testing.T) {
	settingsSvc := &mockSettingsService{
		listFn: func() ([]models.Setting, error) {
			return []models.Setting{
				{Key: "living_reserve_cents", Value: "1000000000"},
				{Key: "top_n_limit", Value: "50"},
			}, nil
		},
	}
	handler := NewCatalogHandler(&mockCatalogService{}, settingsSvc)
	r := setupCatalogRouter(handler)

	rec := doRequest(r, "GET", "/admin/settings", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	settings, ok := result["settings"].([]interface{})
	if !ok || len(settings) != 2 {
		t.Fatalf("expected 2 settings, got: %v", result["settings"])
	}
}
