package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bigkatzo/storefun-backend/internal/catalog"
	"github.com/bigkatzo/storefun-backend/internal/category"
	"github.com/bigkatzo/storefun-backend/internal/collection"
	"github.com/bigkatzo/storefun-backend/internal/config"
	"github.com/bigkatzo/storefun-backend/internal/coupon"
	"github.com/bigkatzo/storefun-backend/internal/kv"
	"github.com/bigkatzo/storefun-backend/internal/merchant"
	"github.com/bigkatzo/storefun-backend/internal/order"
	"github.com/bigkatzo/storefun-backend/internal/product"
	"github.com/bigkatzo/storefun-backend/internal/wallet"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	sessions := newKVStore(cfg.RedisURL)

	// build product service early so catalog and orders can share it
	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	couponService := coupon.NewService(coupon.NewPostgresRepository(db))
	couponHandler := coupon.NewHandler(couponService)

	catalogHandler := catalog.NewHandler(catalog.NewService(productService, sessions))
	collectionHandler := collection.NewHandler(collection.NewService(collection.NewPostgresRepository(db)))
	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), productService, couponService))
	walletHandler := wallet.NewHandler(wallet.NewRedirector(wallet.LinkChecker{}, sessions))
	merchantHandler := merchant.NewHandler(merchant.NewService(merchant.NewPostgresRepository(db)))

	merchantHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	collectionHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	couponHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	walletHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(requestLog)
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// storefront GETs stay public; everything past this middleware
		// needs a merchant token
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != "GET" {
				return false
			}
			p := c.Path()
			return strings.HasPrefix(p, "/api/v1/product/") ||
				strings.HasPrefix(p, "/api/v1/collection/") ||
				strings.HasPrefix(p, "/api/v1/catalog")
		},
	}))

	merchantHandler.RegisterProtectedRoutes(app)
	collectionHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	walletHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Session-ID",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// newKVStore picks Redis when configured and falls back to the in-process
// store. Session and wallet-attempt state is best effort either way.
func newKVStore(redisURL string) kv.Store {
	if redisURL == "" {
		return kv.NewMemoryStore()
	}
	store, err := kv.NewRedisStore(redisURL, 24*time.Hour)
	if err != nil {
		fmt.Printf("warning: redis unavailable, using in-memory store: %v\n", err)
		return kv.NewMemoryStore()
	}
	return store
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			collection_id SERIAL PRIMARY KEY,
			collection_name TEXT NOT NULL,
			slug TEXT UNIQUE NOT NULL,
			collection_img TEXT,
			launch_date TEXT,
			visible BOOLEAN NOT NULL DEFAULT TRUE,
			featured INT NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			product_name TEXT NOT NULL,
			product_desc TEXT,
			collection_id INT NOT NULL DEFAULT 0,
			category TEXT,
			base_price NUMERIC NOT NULL DEFAULT 0,
			product_pic TEXT,
			product_pic_second TEXT,
			visible BOOLEAN NOT NULL DEFAULT TRUE,
			pin_order INT NOT NULL DEFAULT 0,
			sales_count INT NOT NULL DEFAULT 0,
			image_customization BOOLEAN NOT NULL DEFAULT FALSE,
			text_customization BOOLEAN NOT NULL DEFAULT FALSE,
			variants JSONB NOT NULL DEFAULT '[]',
			variant_prices JSONB NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			collection_id INT NOT NULL DEFAULT 0,
			category_name TEXT NOT NULL,
			category_desc TEXT,
			ord INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			coupon_id SERIAL PRIMARY KEY,
			code TEXT UNIQUE NOT NULL,
			discount_type TEXT NOT NULL,
			discount_value NUMERIC NOT NULL DEFAULT 0,
			max_discount NUMERIC,
			status TEXT NOT NULL DEFAULT 'active',
			collection_id INT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			combination_key TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 1,
			price NUMERIC NOT NULL DEFAULT 0,
			coupon_code TEXT,
			total NUMERIC NOT NULL DEFAULT 0,
			wallet_address TEXT,
			tx_signature TEXT,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS merchants (
			merchant_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			store_name TEXT NOT NULL,
			payout_wallet TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
