package coupon

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(seed []Coupon) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func ptrFloat(f float64) *float64 { return &f }

func TestDiscountMath(t *testing.T) {
	cases := []struct {
		name  string
		cp    Coupon
		price float64
		want  float64
	}{
		{"fixed", Coupon{DiscountType: DiscountFixed, DiscountValue: 5}, 20, 15},
		{"fixed clamps at zero", Coupon{DiscountType: DiscountFixed, DiscountValue: 50}, 20, 0},
		{"percentage", Coupon{DiscountType: DiscountPercentage, DiscountValue: 25}, 40, 30},
		{"percentage capped", Coupon{DiscountType: DiscountPercentage, DiscountValue: 50, MaxDiscount: ptrFloat(3)}, 40, 37},
		{"unknown type is a no-op", Coupon{DiscountType: "bogus", DiscountValue: 50}, 40, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cp.Apply(tc.price); got != tc.want {
				t.Fatalf("Apply(%v) = %v, want %v", tc.price, got, tc.want)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  summer10 "); got != "SUMMER10" {
		t.Fatalf("NormalizeCode = %q, want SUMMER10", got)
	}
}

func TestValidateCouponEndpoint(t *testing.T) {
	collID := 7
	app := newTestApp([]Coupon{
		{CouponID: 1, Code: "SAVE10", DiscountType: DiscountPercentage, DiscountValue: 10, Status: StatusActive},
		{CouponID: 2, Code: "PAUSED", DiscountType: DiscountFixed, DiscountValue: 5, Status: StatusPaused},
		{CouponID: 3, Code: "SCOPED", DiscountType: DiscountFixed, DiscountValue: 5, Status: StatusActive, CollectionID: &collID},
	})

	post := func(body string) *http.Response {
		req := httptest.NewRequest("POST", "/api/v1/coupons/validate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		return resp
	}

	// Case-insensitive lookup, discounted price quoted.
	resp := post(`{"code":"save10","price":50}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Discount        float64 `json:"discount"`
		DiscountedPrice float64 `json:"discountedPrice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Discount != 5 || out.DiscountedPrice != 45 {
		t.Fatalf("discount = %v / %v, want 5 / 45", out.Discount, out.DiscountedPrice)
	}

	if resp := post(`{"code":"NOPE","price":50}`); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown code status = %d, want 404", resp.StatusCode)
	}
	if resp := post(`{"code":"PAUSED","price":50}`); resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("paused code status = %d, want 422", resp.StatusCode)
	}
	if resp := post(`{"code":"SCOPED","price":50,"collectionId":8}`); resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("wrong collection status = %d, want 422", resp.StatusCode)
	}
	if resp := post(`{"code":"SCOPED","price":50,"collectionId":7}`); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("matching collection status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateCouponValidation(t *testing.T) {
	app := newTestApp(nil)

	body := `{"code":"","discountType":"half-off","discountValue":0}`
	req := httptest.NewRequest("POST", "/api/v1/coupons", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var out struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"code", "discountType", "discountValue"} {
		if _, ok := out.Errors[field]; !ok {
			t.Errorf("expected validation error for %q", field)
		}
	}
}
