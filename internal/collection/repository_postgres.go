package collection

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

const collectionColumns = `collection_id, collection_name, slug, collection_img, launch_date, visible, featured, created_at, updated_at`

// List returns collection rows, featured first. If the table/query is not
// available the function returns an empty slice (caller-friendly).
func (r *PostgresRepository) List(limit int) ([]Collection, error) {
	rows, err := r.db.Query(`SELECT `+collectionColumns+` FROM collections ORDER BY COALESCE(featured, 0) DESC, collection_id LIMIT $1`, limit)
	if err != nil {
		return []Collection{}, nil
	}
	defer rows.Close()

	out := make([]Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *PostgresRepository) GetBySlug(slug string) (Collection, error) {
	row := r.db.QueryRow(`SELECT `+collectionColumns+` FROM collections WHERE slug = $1`, slug)
	c, err := scanCollection(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Collection{}, ErrNotFound
		}
		return Collection{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(col Collection) (Collection, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO collections (collection_name, slug, collection_img, launch_date, visible, featured, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING collection_id`,
		col.Name, col.Slug, col.Image, col.LaunchDate, col.Visible, col.Featured, col.CreatedAt, col.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Collection{}, err
	}
	col.CollectionID = id
	return col, nil
}

func (r *PostgresRepository) Update(id int, col Collection) (Collection, error) {
	result, err := r.db.Exec(
		`UPDATE collections
		 SET collection_name = $1, slug = $2, collection_img = $3, launch_date = $4, visible = $5, featured = $6, updated_at = $7
		 WHERE collection_id = $8`,
		col.Name, col.Slug, col.Image, col.LaunchDate, col.Visible, col.Featured, col.UpdatedAt, id,
	)
	if err != nil {
		return Collection{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Collection{}, err
	}
	if affected == 0 {
		return Collection{}, ErrNotFound
	}
	col.CollectionID = id
	return col, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM collections WHERE collection_id = $1`, id)
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

func scanCollection(scanner rowScanner) (Collection, error) {
	c := Collection{}
	var (
		img        sql.NullString
		launchDate sql.NullString
		createdAt  sql.NullString
		updatedAt  sql.NullString
	)
	if err := scanner.Scan(
		&c.CollectionID,
		&c.Name,
		&c.Slug,
		&img,
		&launchDate,
		&c.Visible,
		&c.Featured,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Collection{}, err
	}
	if img.Valid {
		c.Image = &img.String
	}
	if launchDate.Valid {
		c.LaunchDate = &launchDate.String
	}
	if createdAt.Valid {
		c.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.String
	}
	return c, nil
}
