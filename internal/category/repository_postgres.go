package category

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

// List returns category rows ordered by `ord` then id, optionally
// restricted to one collection. If the table/query is not available the
// function returns an empty slice (caller-friendly).
func (r *PostgresRepository) List(collectionID int, limit int) ([]Category, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if collectionID > 0 {
		rows, err = r.db.Query(`SELECT category_id, collection_id, category_name, category_desc, ord FROM categories WHERE collection_id = $1 ORDER BY COALESCE(ord, 0) DESC, category_id LIMIT $2`, collectionID, limit)
	} else {
		rows, err = r.db.Query(`SELECT category_id, collection_id, category_name, category_desc, ord FROM categories ORDER BY COALESCE(ord, 0) DESC, category_id LIMIT $1`, limit)
	}
	if err != nil {
		// table may not exist or be empty — return empty slice to keep API resilient
		return []Category{}, nil
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			c    Category
			desc sql.NullString
		)
		if err := rows.Scan(&c.CategoryID, &c.CollectionID, &c.Name, &desc, &c.Ord); err != nil {
			continue
		}
		if desc.Valid {
			c.Description = &desc.String
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO categories (collection_id, category_name, category_desc, ord) VALUES ($1,$2,$3,$4) RETURNING category_id`,
		cat.CollectionID, cat.Name, cat.Description, cat.Ord,
	).Scan(&id)
	if err != nil {
		return Category{}, err
	}
	cat.CategoryID = id
	return cat, nil
}

func (r *PostgresRepository) Update(id int, cat Category) (Category, error) {
	result, err := r.db.Exec(
		`UPDATE categories SET collection_id = $1, category_name = $2, category_desc = $3, ord = $4 WHERE category_id = $5`,
		cat.CollectionID, cat.Name, cat.Description, cat.Ord, id,
	)
	if err != nil {
		return Category{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Category{}, err
	}
	if affected == 0 {
		return Category{}, ErrNotFound
	}
	cat.CategoryID = id
	return cat, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE category_id = $1`, id)
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
