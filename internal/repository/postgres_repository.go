package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	productJSON, err := json.Marshal(order.Product)
	if err != nil {
		return fmt.Errorf("failed to marshal product selection: %w", err)
	}

	query := `INSERT INTO orders (order_number, customer_name, email, phone, address, city, state, zip_code,
	                              product, subtotal, total, card_last4, expiry_date, transaction_status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.OrderNumber,
		order.CustomerName,
		order.Email,
		order.Phone,
		order.Address,
		order.City,
		order.State,
		order.ZipCode,
		productJSON,
		order.Subtotal,
		order.Total,
		order.CardLast4,
		order.ExpiryDate,
		order.Status,
		order.CreatedAt)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

func (r *Repository) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT order_number, customer_name, email, phone, address, city, state, zip_code,
	                 product, subtotal, total, card_last4, expiry_date, transaction_status, created_at
	          FROM orders WHERE order_number = $1`

	var order domain.Order
	var productJSON []byte
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&order.OrderNumber,
		&order.CustomerName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.City,
		&order.State,
		&order.ZipCode,
		&productJSON,
		&order.Subtotal,
		&order.Total,
		&order.CardLast4,
		&order.ExpiryDate,
		&order.Status,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by number: %w", err)
	}

	if err := json.Unmarshal(productJSON, &order.Product); err != nil {
		return nil, fmt.Errorf("unmarshal product selection: %w", err)
	}

	if !order.Status.Valid() {
		return nil, fmt.Errorf("order %s has unknown transaction status %q", order.OrderNumber, order.Status)
	}

	return &order, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
