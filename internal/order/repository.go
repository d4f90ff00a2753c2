package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"toko-be/internal/inventory"
	"toko-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID uuid.UUID, shipping ShippingSnapshot, payment PaymentSnapshot, invoiceNumber string) (*Order, error)
	GetOrders(ctx context.Context, filter *FilterInput, sort *SortInput, limit, offset int32) ([]*Order, error)
	GetDetail(ctx context.Context, orderID uuid.UUID) (*Order, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) (*Order, error)
}

type repository struct {
	db      *sql.DB
	invRepo inventory.Repository
}

func NewRepository(db *sql.DB, invRepo inventory.Repository) Repository {
	return &repository{db: db, invRepo: invRepo}
}

// CreateFromCart builds an order from the user's cart inside one
// transaction: read cart with current catalog prices, insert the header,
// insert the item snapshots, clear the cart. A failure at any step leaves
// no partial order and the cart intact.
func (r *repository) CreateFromCart(
	ctx context.Context,
	userID uuid.UUID,
	shipping ShippingSnapshot,
	payment PaymentSnapshot,
	invoiceNumber string,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
		zap.String("user_id", userID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// 1. Read the cart with *current* stored prices. Client-supplied
	// prices never reach this query.
	rows, err := tx.QueryContext(ctx, `
		SELECT c.product_id, p.name, c.quantity, p.price
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}

	var items []Item
	total := decimal.Zero

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, item)
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	shippingJSON, err := json.Marshal(shipping)
	if err != nil {
		return nil, err
	}
	paymentJSON, err := json.Marshal(payment)
	if err != nil {
		return nil, err
	}

	// 2. Insert order header.
	o := &Order{
		UserID:        userID,
		InvoiceNumber: invoiceNumber,
		Shipping:      shipping,
		Payment:       payment,
		Total:         total,
		Status:        StatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, invoice_number, shipping, payment, total, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		userID,
		invoiceNumber,
		shippingJSON,
		paymentJSON,
		total,
		StatusPending,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 3. Insert item snapshots.
	for i := range items {
		items[i].OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			o.ID,
			items[i].ProductID,
			items[i].Name,
			items[i].Quantity,
			items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return nil, err
		}
	}
	o.Items = items

	// 4. Clear the cart.
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("invoice_number", invoiceNumber),
		zap.Int("item_count", len(items)),
		zap.String("total", total.String()),
	)

	return o, nil
}

func (r *repository) GetOrders(
	ctx context.Context,
	filter *FilterInput,
	sort *SortInput,
	limit, offset int32,
) ([]*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrders"),
		zap.Int32("limit", limit),
		zap.Int32("offset", offset),
	)

	// ---------- BASE QUERY ----------
	query := `
		SELECT
			o.id,
			o.user_id,
			o.invoice_number,
			o.total,
			o.status,
			o.created_at,
			o.updated_at
		FROM orders o
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	// ---------- FILTERING ----------
	if filter != nil {

		if filter.UserID != nil {
			query += fmt.Sprintf(" AND o.user_id = $%d", argIndex)
			args = append(args, *filter.UserID)
			argIndex++
		}

		if filter.Status != nil && *filter.Status != "" {
			query += fmt.Sprintf(" AND o.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}

		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(
				" AND (o.id::text ILIKE $%d OR o.invoice_number ILIKE $%d)",
				argIndex, argIndex,
			)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
			args = append(args, *filter.DateFrom)
			argIndex++
		}

		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
			args = append(args, *filter.DateTo)
			argIndex++
		}
	}

	// ---------- SORTING ----------
	orderBy := "o.created_at DESC"

	if sort != nil {
		dir := strings.ToUpper(sort.Direction)
		if dir != "ASC" && dir != "DESC" {
			dir = "DESC"
		}

		switch sort.Field {
		case SortFieldTotal:
			orderBy = "o.total " + dir
		case SortFieldCreatedAt:
			orderBy = "o.created_at " + dir
		}
	}

	query += " ORDER BY " + orderBy

	// ---------- PAGINATION ----------
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.InvoiceNumber,
			&o.Total,
			&o.Status,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Info("get orders success", zap.Int("count", len(orders)))

	return orders, nil
}

func (r *repository) GetDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	var o Order
	var shippingJSON, paymentJSON []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, invoice_number, shipping, payment, total, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.UserID,
		&o.InvoiceNumber,
		&shippingJSON,
		&paymentJSON,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(shippingJSON, &o.Shipping); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paymentJSON, &o.Payment); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

// AdvanceStatus writes the new status and, only on the transition into
// Shipped, deducts inventory for every line item. The status write and all
// deductions share one transaction, so a failed deduction aborts the whole
// transition and no stock moves.
func (r *repository) AdvanceStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AdvanceStatus"),
		zap.String("order_id", orderID.String()),
		zap.String("new_status", string(newStatus)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Lock the header row so concurrent admin actions serialize and the
	// Shipped side effect fires at most once.
	var o Order
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, invoice_number, total, status, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, orderID).Scan(
		&o.ID,
		&o.UserID,
		&o.InvoiceNumber,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	prevStatus := o.Status

	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`, newStatus, orderID).Scan(&o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = newStatus

	if newStatus == StatusShipped && prevStatus != StatusShipped {
		rows, err := tx.QueryContext(ctx, `
			SELECT product_id, quantity
			FROM order_items
			WHERE order_id = $1
		`, orderID)
		if err != nil {
			return nil, err
		}

		type lineItem struct {
			productID uuid.UUID
			quantity  int
		}
		var lineItems []lineItem
		for rows.Next() {
			var li lineItem
			if err := rows.Scan(&li.productID, &li.quantity); err != nil {
				rows.Close()
				return nil, err
			}
			lineItems = append(lineItems, li)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		for _, li := range lineItems {
			if _, err := r.invRepo.DeductTx(ctx, tx, li.productID, li.quantity); err != nil {
				log.Warn("inventory deduction failed, aborting transition",
					zap.String("product_id", li.productID.String()),
					zap.Int("quantity", li.quantity),
					zap.Error(err),
				)
				return nil, err
			}
		}

		log.Info("inventory deducted for shipment",
			zap.Int("item_count", len(lineItems)),
		)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	log.Info("order status updated",
		zap.String("previous_status", string(prevStatus)),
	)

	return &o, nil
}
