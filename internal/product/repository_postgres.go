package product

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/bigkatzo/storefun-backend/internal/pricing"
	"github.com/bigkatzo/storefun-backend/internal/variant"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `product_id, product_name, product_desc, collection_id, category, base_price, product_pic, product_pic_second, visible, pin_order, sales_count, image_customization, text_customization, variants, variant_prices, created_at, updated_at`

const (
	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY product_id
	`
	listByCollectionQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE collection_id = $1
		ORDER BY product_id
	`
	listByIDsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY product_id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1
	`
	insertProductQuery = `
		INSERT INTO products (product_name, product_desc, collection_id, category, base_price, product_pic, product_pic_second, visible, pin_order, sales_count, image_customization, text_customization, variants, variant_prices, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET product_name = $1,
			product_desc = $2,
			collection_id = $3,
			category = $4,
			base_price = $5,
			product_pic = $6,
			product_pic_second = $7,
			visible = $8,
			pin_order = $9,
			sales_count = $10,
			image_customization = $11,
			text_customization = $12,
			variants = $13,
			variant_prices = $14,
			updated_at = $15
		WHERE product_id = $16
	`
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) ListByCollection(collectionID int) []Product {
	rows, err := r.db.Query(listByCollectionQuery, collectionID)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ListByIDs retrieves the products whose id is in the provided slice.
// Returns an empty slice without querying when the input is empty.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	variantsJSON, pricesJSON, err := marshalVariantFields(p)
	if err != nil {
		return Product{}, err
	}
	var id int
	err = r.db.QueryRow(
		insertProductQuery,
		p.Name,
		p.Description,
		p.CollectionID,
		p.Category,
		p.BasePrice,
		p.Image,
		p.ImageSecond,
		p.Visible,
		p.PinOrder,
		p.SalesCount,
		p.ImageCustomization,
		p.TextCustomization,
		variantsJSON,
		pricesJSON,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	variantsJSON, pricesJSON, err := marshalVariantFields(p)
	if err != nil {
		return Product{}, err
	}
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Description,
		p.CollectionID,
		p.Category,
		p.BasePrice,
		p.Image,
		p.ImageSecond,
		p.Visible,
		p.PinOrder,
		p.SalesCount,
		p.ImageCustomization,
		p.TextCustomization,
		variantsJSON,
		pricesJSON,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// marshalVariantFields serializes the variant list and pricing map for the
// jsonb columns. Nil values are written as empty list/object so the columns
// never hold SQL NULL.
func marshalVariantFields(p Product) ([]byte, []byte, error) {
	vs := p.Variants
	if vs == nil {
		vs = []variant.Variant{}
	}
	prices := p.VariantPrices
	if prices == nil {
		prices = pricing.Map{}
	}
	variantsJSON, err := json.Marshal(vs)
	if err != nil {
		return nil, nil, err
	}
	pricesJSON, err := json.Marshal(prices)
	if err != nil {
		return nil, nil, err
	}
	return variantsJSON, pricesJSON, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		category    sql.NullString
		pic         sql.NullString
		picSecond   sql.NullString
		variantsRaw []byte
		pricesRaw   []byte
		createdAt   sql.NullString
		updatedAt   sql.NullString
	)

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CollectionID,
		&category,
		&p.BasePrice,
		&pic,
		&picSecond,
		&p.Visible,
		&p.PinOrder,
		&p.SalesCount,
		&p.ImageCustomization,
		&p.TextCustomization,
		&variantsRaw,
		&pricesRaw,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	if category.Valid {
		p.Category = &category.String
	}
	if pic.Valid {
		p.Image = &pic.String
	}
	if picSecond.Valid {
		p.ImageSecond = &picSecond.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.String
	}
	if len(variantsRaw) > 0 {
		if err := json.Unmarshal(variantsRaw, &p.Variants); err != nil {
			return Product{}, err
		}
	}
	if len(pricesRaw) > 0 {
		if err := json.Unmarshal(pricesRaw, &p.VariantPrices); err != nil {
			return Product{}, err
		}
	}
	return p, nil
}
