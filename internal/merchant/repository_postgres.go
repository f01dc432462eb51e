package merchant

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

const merchantColumns = `merchant_id, email, password, store_name, payout_wallet, created_at, updated_at`

func (r *PostgresRepository) GetByID(id int) (Merchant, error) {
	row := r.db.QueryRow(`SELECT `+merchantColumns+` FROM merchants WHERE merchant_id = $1`, id)
	return scanMerchant(row)
}

func (r *PostgresRepository) GetByEmail(email string) (Merchant, error) {
	row := r.db.QueryRow(`SELECT `+merchantColumns+` FROM merchants WHERE email = $1`, email)
	return scanMerchant(row)
}

func (r *PostgresRepository) Create(m Merchant) (Merchant, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO merchants (email, password, store_name, payout_wallet, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING merchant_id`,
		m.Email, m.Password, m.StoreName, m.PayoutWallet, m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Merchant{}, err
	}
	m.ID = id
	return m, nil
}

func (r *PostgresRepository) Update(id int, m Merchant) (Merchant, error) {
	result, err := r.db.Exec(
		`UPDATE merchants
		 SET email = $1, store_name = $2, payout_wallet = $3, updated_at = $4
		 WHERE merchant_id = $5`,
		m.Email, m.StoreName, m.PayoutWallet, m.UpdatedAt, id,
	)
	if err != nil {
		return Merchant{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Merchant{}, err
	}
	if affected == 0 {
		return Merchant{}, ErrNotFound
	}
	m.ID = id
	return m, nil
}

func scanMerchant(row *sql.Row) (Merchant, error) {
	m := Merchant{}
	var (
		payoutWallet sql.NullString
		createdAt    sql.NullString
		updatedAt    sql.NullString
	)
	if err := row.Scan(
		&m.ID,
		&m.Email,
		&m.Password,
		&m.StoreName,
		&payoutWallet,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return Merchant{}, ErrNotFound
		}
		return Merchant{}, err
	}
	if payoutWallet.Valid {
		m.PayoutWallet = &payoutWallet.String
	}
	if createdAt.Valid {
		m.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		m.UpdatedAt = &updatedAt.String
	}
	return m, nil
}
