package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Narrowed so
// tests can substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository adapter.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            status TEXT NOT NULL DEFAULT 'PENDING',
            total_amount DOUBLE PRECISION NOT NULL,
            total_items INTEGER NOT NULL,
            paid BOOLEAN NOT NULL DEFAULT FALSE,
            paid_at TIMESTAMPTZ,
            charge_ref TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id SERIAL PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id),
            product_id TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS receipts (
            id SERIAL PRIMARY KEY,
            order_id UUID UNIQUE NOT NULL REFERENCES orders(id),
            receipt_url TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, lines []model.OrderLine, totalAmount float64, totalItems int) (*model.Order, error) {
	order := &model.Order{
		ID:          uuid.New().String(),
		Status:      model.OrderStatusPending,
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, status, total_amount, total_items)
                             VALUES ($1, $2, $3, $4)
                             RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder, order.ID, order.Status, totalAmount, totalItems).
			Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		const insertLine = `INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
                            VALUES ($1, $2, $3, $4)
                            RETURNING id`
		for _, line := range lines {
			persisted := line
			if err := tx.QueryRow(ctx, insertLine, order.ID, line.ProductID, line.Quantity, line.UnitPrice).
				Scan(&persisted.ID); err != nil {
				return err
			}
			order.Lines = append(order.Lines, persisted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const orderQuery = `SELECT id, status, total_amount, total_items, paid, paid_at, charge_ref, created_at, updated_at
                        FROM orders WHERE id=$1`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID, &order.Status, &order.TotalAmount, &order.TotalItems,
		&order.Paid, &order.PaidAt, &order.ChargeRef, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `SELECT id, product_id, quantity, unit_price
                        FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ID, &line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const receiptQuery = `SELECT id, receipt_url FROM receipts WHERE order_id=$1`
	var receipt model.Receipt
	err = r.storage.pool.QueryRow(ctx, receiptQuery, id).Scan(&receipt.ID, &receipt.ReceiptURL)
	switch {
	case err == nil:
		order.Receipt = &receipt
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	var statusFilter *string
	if status != nil {
		value := string(*status)
		statusFilter = &value
	}

	const countQuery = `SELECT COUNT(*) FROM orders WHERE ($1::text IS NULL OR status=$1)`
	var total int
	if err := r.storage.pool.QueryRow(ctx, countQuery, statusFilter).Scan(&total); err != nil {
		return nil, err
	}

	const listQuery = `SELECT id, status, total_amount, total_items, paid, paid_at, charge_ref, created_at, updated_at
                       FROM orders WHERE ($1::text IS NULL OR status=$1)
                       ORDER BY created_at DESC
                       LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, listQuery, statusFilter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &model.OrderPage{
		Total:    total,
		Page:     page,
		LastPage: (total + limit - 1) / limit,
	}
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(
			&order.ID, &order.Status, &order.TotalAmount, &order.TotalItems,
			&order.Paid, &order.PaidAt, &order.ChargeRef, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2
                   RETURNING id, status, total_amount, total_items, paid, paid_at, charge_ref, created_at, updated_at`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, status, id).Scan(
		&order.ID, &order.Status, &order.TotalAmount, &order.TotalItems,
		&order.Paid, &order.PaidAt, &order.ChargeRef, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id, chargeRef, receiptURL string) (bool, error) {
	var applied bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const markQuery = `UPDATE orders
                           SET status=$1, paid=TRUE, paid_at=NOW(), charge_ref=$2, updated_at=NOW()
                           WHERE id=$3 AND paid=FALSE`
		tag, err := tx.Exec(ctx, markQuery, model.OrderStatusPaid, chargeRef, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			// Either the order doesn't exist or a redelivered payment event
			// already marked it paid.
			const paidQuery = `SELECT paid FROM orders WHERE id=$1`
			var paid bool
			if err := tx.QueryRow(ctx, paidQuery, id).Scan(&paid); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if !paid {
				return fmt.Errorf("mark paid: order %s not updated", id)
			}
			return nil
		}

		const insertReceipt = `INSERT INTO receipts (order_id, receipt_url) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insertReceipt, id, receiptURL); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
