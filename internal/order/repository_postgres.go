package order

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

const orderColumns = `order_id, product_id, combination_key, quantity, price, coupon_code, total, wallet_address, tx_signature, status, created_at, updated_at`

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(`SELECT ` + orderColumns + ` FROM orders ORDER BY order_id DESC`)
	if err != nil {
		return []Order{}, nil
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO orders (product_id, combination_key, quantity, price, coupon_code, total, wallet_address, tx_signature, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING order_id`,
		o.ProductID, o.CombinationKey, o.Quantity, o.Price, o.CouponCode, o.Total, o.WalletAddress, o.TxSignature, o.Status, o.CreatedAt, o.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Order{}, err
	}
	o.OrderID = id
	return o, nil
}

func (r *PostgresRepository) Update(id int, o Order) (Order, error) {
	result, err := r.db.Exec(
		`UPDATE orders
		 SET product_id = $1, combination_key = $2, quantity = $3, price = $4, coupon_code = $5, total = $6, wallet_address = $7, tx_signature = $8, status = $9, updated_at = $10
		 WHERE order_id = $11`,
		o.ProductID, o.CombinationKey, o.Quantity, o.Price, o.CouponCode, o.Total, o.WalletAddress, o.TxSignature, o.Status, o.UpdatedAt, id,
	)
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}
	o.OrderID = id
	return o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	o := Order{}
	var (
		couponCode    sql.NullString
		walletAddress sql.NullString
		txSignature   sql.NullString
		createdAt     sql.NullString
		updatedAt     sql.NullString
	)
	if err := scanner.Scan(
		&o.OrderID,
		&o.ProductID,
		&o.CombinationKey,
		&o.Quantity,
		&o.Price,
		&couponCode,
		&o.Total,
		&walletAddress,
		&txSignature,
		&o.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Order{}, err
	}
	if couponCode.Valid {
		o.CouponCode = &couponCode.String
	}
	if walletAddress.Valid {
		o.WalletAddress = &walletAddress.String
	}
	if txSignature.Valid {
		o.TxSignature = &txSignature.String
	}
	if createdAt.Valid {
		o.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		o.UpdatedAt = &updatedAt.String
	}
	return o, nil
}
