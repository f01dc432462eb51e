package merchant

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// makeApp injects a jwt.Token into locals when the X-Merchant-ID header is
// set, so protected routes can be exercised without the full jwtware
// middleware.
func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Merchant-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"merchant_id": float64(id)}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func seedMerchant(t *testing.T) Merchant {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return Merchant{ID: 3, Email: "shop@example.com", Password: string(hashed), StoreName: "Degen Drip"}
}

func TestSignInIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := makeApp(NewHandler(NewService(NewInMemoryRepository([]Merchant{seedMerchant(t)}))))

	body := `{"email":"shop@example.com","password":"hunter22"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Token    string   `json:"token"`
		Merchant Merchant `json:"merchant"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a signed token")
	}
	if out.Merchant.Password != "" {
		t.Fatal("password must not leak in the sign-in response")
	}

	tok, err := jwt.Parse(out.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["merchant_id"] != float64(3) {
		t.Fatalf("merchant_id claim = %v, want 3", claims["merchant_id"])
	}
}

func TestSignInRejectsBadPassword(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository([]Merchant{seedMerchant(t)}))))

	body := `{"email":"shop@example.com","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository([]Merchant{seedMerchant(t)}))))

	body := `{"email":"shop@example.com","password":"pw","storeName":"Other"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-up", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestProfileRoute(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository([]Merchant{seedMerchant(t)}))))

	// unauthorized without the middleware-injected token
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("X-Merchant-ID", "3")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var m Merchant
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Email != "shop@example.com" || m.Password != "" {
		t.Fatalf("unexpected profile payload: %+v", m)
	}
}

func TestUpdateProfile(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository([]Merchant{seedMerchant(t)}))))

	body := `{"storeName":"New Name","payoutWallet":"9xQeWvG8..."}`
	req := httptest.NewRequest("PUT", "/api/v1/profile", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", "3")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var m Merchant
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.StoreName != "New Name" {
		t.Fatalf("storeName = %q, want New Name", m.StoreName)
	}
	if m.PayoutWallet == nil || *m.PayoutWallet != "9xQeWvG8..." {
		t.Fatalf("payoutWallet = %v", m.PayoutWallet)
	}
}
