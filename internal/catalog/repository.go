package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

type Repository struct {
	db *sql.DB
}

type RepoInterface interface {
	GetProduct(ctx context.Context) (*domain.Product, error)
	DecrementInventory(ctx context.Context, productID string, quantity int) error
	Close() error
	RunMigrations(string) error
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// GetProduct returns the storefront's single catalog product.
func (r *Repository) GetProduct(ctx context.Context) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, variants, inventory
		FROM products
		ORDER BY id
		LIMIT 1
	`

	p := &domain.Product{}
	var variantsJSON []byte
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&variantsJSON,
		&p.Inventory,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
		return nil, fmt.Errorf("unmarshal product variants: %w", err)
	}

	return p, nil
}

// DecrementInventory reduces stock for an approved order. The guard in the
// WHERE clause keeps the counter from going negative under concurrent orders.
func (r *Repository) DecrementInventory(ctx context.Context, productID string, quantity int) error {
	query := `UPDATE products SET inventory = inventory - ? WHERE id = ? AND inventory >= ?`

	res, err := r.db.ExecContext(ctx, query, quantity, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
