package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsForQuery(t *testing.T, query string) *PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	p := paramsForQuery(t, "")

	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected page 1 size %d, got page %d size %d", DefaultPageSize, p.Page, p.PageSize)
	}
	if p.Sort != "created_at" || p.Order != "desc" {
		t.Errorf("expected created_at desc, got %s %s", p.Sort, p.Order)
	}
}

func TestGetPaginationParams_ClampsPageSize(t *testing.T) {
	p := paramsForQuery(t, "page_size=9999")
	if p.PageSize != MaxPageSize {
		t.Errorf("expected clamp to %d, got %d", MaxPageSize, p.PageSize)
	}

	p = paramsForQuery(t, "page_size=0&page=-3")
	if p.PageSize != MinPageSize || p.Page != 1 {
		t.Errorf("expected size %d page 1, got size %d page %d", MinPageSize, p.PageSize, p.Page)
	}
}

func TestGetPaginationParams_SortWhitelist(t *testing.T) {
	p := paramsForQuery(t, "sort=pickup_date&order=asc")
	if p.Sort != "pickup_date" || p.Order != "asc" {
		t.Errorf("expected pickup_date asc, got %s %s", p.Sort, p.Order)
	}

	p = paramsForQuery(t, "sort=password&order=sideways")
	if p.Sort != "created_at" {
		t.Errorf("expected unknown sort to fall back to created_at, got %s", p.Sort)
	}
	if p.Order != "desc" {
		t.Errorf("expected unknown order to fall back to desc, got %s", p.Order)
	}
}

func TestCreatePaginationMeta(t *testing.T) {
	t.Parallel()

	meta := CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 20}, 45)
	if meta.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrevious {
		t.Error("expected middle page to have neighbours")
	}
	if meta.NextPage == nil || *meta.NextPage != 3 {
		t.Errorf("expected next page 3, got %v", meta.NextPage)
	}
}
