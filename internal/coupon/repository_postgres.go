package coupon

import (
	"database/sql"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const couponColumns = `coupon_id, code, discount_type, discount_value, max_discount, status, collection_id, created_at, updated_at`

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(`SELECT ` + couponColumns + ` FROM coupons ORDER BY coupon_id`)
	if err != nil {
		return []Coupon{}, nil
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		cp, err := scanCoupon(rows)
		if err != nil {
			continue
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	row := r.db.QueryRow(`SELECT `+couponColumns+` FROM coupons WHERE code = $1`, NormalizeCode(code))
	cp, err := scanCoupon(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Coupon{}, ErrNotFound
		}
		return Coupon{}, err
	}
	return cp, nil
}

func (r *PostgresRepository) Create(cp Coupon) (Coupon, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO coupons (code, discount_type, discount_value, max_discount, status, collection_id, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING coupon_id`,
		NormalizeCode(cp.Code), cp.DiscountType, cp.DiscountValue, cp.MaxDiscount, cp.Status, cp.CollectionID, cp.CreatedAt, cp.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Coupon{}, err
	}
	cp.CouponID = id
	cp.Code = NormalizeCode(cp.Code)
	return cp, nil
}

func (r *PostgresRepository) Update(id int, cp Coupon) (Coupon, error) {
	result, err := r.db.Exec(
		`UPDATE coupons
		 SET code = $1, discount_type = $2, discount_value = $3, max_discount = $4, status = $5, collection_id = $6, updated_at = $7
		 WHERE coupon_id = $8`,
		NormalizeCode(cp.Code), cp.DiscountType, cp.DiscountValue, cp.MaxDiscount, cp.Status, cp.CollectionID, cp.UpdatedAt, id,
	)
	if err != nil {
		return Coupon{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Coupon{}, err
	}
	if affected == 0 {
		return Coupon{}, ErrNotFound
	}
	cp.CouponID = id
	cp.Code = NormalizeCode(cp.Code)
	return cp, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM coupons WHERE coupon_id = $1`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(scanner rowScanner) (Coupon, error) {
	cp := Coupon{}
	var (
		maxDiscount  sql.NullFloat64
		collectionID sql.NullInt64
		createdAt    sql.NullString
		updatedAt    sql.NullString
	)
	if err := scanner.Scan(
		&cp.CouponID,
		&cp.Code,
		&cp.DiscountType,
		&cp.DiscountValue,
		&maxDiscount,
		&cp.Status,
		&collectionID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Coupon{}, err
	}
	if maxDiscount.Valid {
		cp.MaxDiscount = &maxDiscount.Float64
	}
	if collectionID.Valid {
		id := int(collectionID.Int64)
		cp.CollectionID = &id
	}
	if createdAt.Valid {
		cp.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		cp.UpdatedAt = &updatedAt.String
	}
	return cp, nil
}
