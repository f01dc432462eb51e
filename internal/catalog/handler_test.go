package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/bigkatzo/storefun-backend/internal/kv"
	"github.com/bigkatzo/storefun-backend/internal/product"
)

type stubSource struct {
	items []product.Product
}

func (s stubSource) ListVisible() []product.Product { return s.items }
func (s stubSource) ListByCollection(id int) []product.Product {
	out := make([]product.Product, 0)
	for _, p := range s.items {
		if p.CollectionID == id {
			out = append(out, p)
		}
	}
	return out
}

func TestBrowseEndpointPagesThroughTheGrid(t *testing.T) {
	source := stubSource{items: makeProducts(25)}
	handler := NewHandler(NewService(source, kv.NewMemoryStore()))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	req := httptest.NewRequest("GET", "/api/v1/catalog?pageSize=12&pages=1", nil)
	req.Header.Set("X-Session-ID", "sess-9")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var result BrowseResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Products) != 24 {
		t.Fatalf("expected 24 products after one load-more, got %d", len(result.Products))
	}
	if !result.HasMore {
		t.Fatalf("expected hasMore=true at 24 of 25")
	}

	req2 := httptest.NewRequest("GET", "/api/v1/catalog?collection=abc", nil)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad collection id, got %d", res2.StatusCode)
	}
}
