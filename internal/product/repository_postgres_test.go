package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_id", "product_name", "product_desc", "collection_id", "category",
		"base_price", "product_pic", "product_pic_second", "visible", "pin_order",
		"sales_count", "image_customization", "text_customization", "variants",
		"variant_prices", "created_at", "updated_at",
	})
}

func TestGetByIDUnmarshalsVariantColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	variantsJSON := `[{"id":"size","name":"Size","options":[{"id":"s1","value":"S"},{"id":"s2","value":"M"}]}]`
	pricesJSON := `{"size:S":12,"size:M":10}`
	rows := productRows().AddRow(
		7, "Tee", "Soft cotton tee", 2, "apparel",
		10.0, "/img/tee.png", nil, true, 0,
		42, false, false, []byte(variantsJSON),
		[]byte(pricesJSON), "2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z",
	)
	mock.ExpectQuery("FROM products").WithArgs(7).WillReturnRows(rows)

	p, err := repo.GetByID(7)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(p.Variants) != 1 || p.Variants[0].Name != "Size" || len(p.Variants[0].Options) != 2 {
		t.Fatalf("variants not unmarshaled: %+v", p.Variants)
	}
	if p.Price("size:S") != 12 {
		t.Fatalf("override not unmarshaled: %v", p.VariantPrices)
	}
	if p.Price("size:L") != 10 {
		t.Fatalf("base price fallback broken: %v", p.Price("size:L"))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(99).WillReturnRows(productRows())

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDsUsesArrayParameter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(1, "A", "", 1, nil, 5.0, nil, nil, true, 0, 0, false, false, []byte(`[]`), []byte(`{}`), nil, nil).
		AddRow(2, "B", "", 1, nil, 6.0, nil, nil, true, 0, 0, false, false, []byte(`[]`), []byte(`{}`), nil, nil)
	mock.ExpectQuery("ANY").WithArgs(pq.Array([]int{1, 2})).WillReturnRows(rows)

	out, err := repo.ListByIDs([]int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}

	// empty input short-circuits without a query
	empty, err := repo.ListByIDs(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result without query, got %v / %v", empty, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateWritesJSONBColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(11))

	created, err := repo.Create(Product{Name: "Tee", BasePrice: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 11 {
		t.Fatalf("expected assigned id 11, got %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
