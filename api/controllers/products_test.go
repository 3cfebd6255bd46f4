package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func newCatalog(t *testing.T) catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(catalog.DefaultProducts())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return svc
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestProductListFiltersAndSorts(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Electronics&sort=price-low-high", nil)
	resp := httptest.NewRecorder()
	ProductList(newCatalog(t), nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body productListResponse
	decodeData(t, resp, &body)
	if body.Total != 2 || len(body.Products) != 2 {
		t.Fatalf("unexpected listing %+v", body)
	}
	if body.Products[0].ID != "3" || body.Products[0].Price != "129.00" || body.Products[0].Available {
		t.Fatalf("unexpected first product %+v", body.Products[0])
	}
	if body.Products[1].ID != "2" {
		t.Fatalf("unexpected second product %+v", body.Products[1])
	}
}

func TestProductListPaginates(t *testing.T) {
	svc := newCatalog(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=4", nil)
	resp := httptest.NewRecorder()
	ProductList(svc, nil).ServeHTTP(resp, req)

	var first productListResponse
	decodeData(t, resp, &first)
	if len(first.Products) != 4 || first.NextCursor == "" || first.Total != 6 {
		t.Fatalf("unexpected first page %+v", first)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=4&cursor="+first.NextCursor, nil)
	resp = httptest.NewRecorder()
	ProductList(svc, nil).ServeHTTP(resp, req)

	var second productListResponse
	decodeData(t, resp, &second)
	if len(second.Products) != 2 || second.NextCursor != "" {
		t.Fatalf("unexpected second page %+v", second)
	}
	if second.Products[0].ID != "5" {
		t.Fatalf("expected page two to start at product 5, got %s", second.Products[0].ID)
	}
}

func TestProductListRejectsBadInput(t *testing.T) {
	for _, target := range []string{
		"/api/v1/products?sort=cheapest",
		"/api/v1/products?limit=0",
		"/api/v1/products?cursor=!!!",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		ProductList(newCatalog(t), nil).ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, resp.Code)
		}
		if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: unexpected code %s", target, code)
		}
	}
}

func TestProductFeaturedDefaultsToFour(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/featured", nil)
	resp := httptest.NewRecorder()
	ProductFeatured(newCatalog(t), nil).ServeHTTP(resp, req)

	var products []productResponse
	decodeData(t, resp, &products)
	if len(products) != 4 {
		t.Fatalf("expected 4 featured products, got %d", len(products))
	}
	for _, p := range products {
		if !p.Featured {
			t.Fatalf("non-featured product %s returned", p.ID)
		}
	}
}

func TestProductDetail(t *testing.T) {
	svc := newCatalog(t)

	resp := httptest.NewRecorder()
	ProductDetail(svc, nil).ServeHTTP(resp, withProductID(httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil), "1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var product productResponse
	decodeData(t, resp, &product)
	if product.Name != "Goat Hub Premium Access Key" || product.Price != "4.99" {
		t.Fatalf("unexpected product %+v", product)
	}

	resp = httptest.NewRecorder()
	ProductDetail(svc, nil).ServeHTTP(resp, withProductID(httptest.NewRequest(http.MethodGet, "/api/v1/products/nope", nil), "nope"))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCategoryList(t *testing.T) {
	resp := httptest.NewRecorder()
	CategoryList(newCatalog(t), nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	var categories []string
	decodeData(t, resp, &categories)
	want := []string{"All", "Digital Key", "Electronics", "Accessories"}
	if len(categories) != len(want) {
		t.Fatalf("unexpected categories %v", categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("unexpected categories %v", categories)
		}
	}
}

func withProductID(req *http.Request, id string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add("productId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}
