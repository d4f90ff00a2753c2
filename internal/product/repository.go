package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetList(ctx context.Context, opts ListOptions) ([]*Product, int, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, productID uuid.UUID, input NewProduct) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Columns shared by every product select. Average rating is a read-time
// aggregate over reviews, never a stored counter.
const productColumns = `
	p.id,
	p.name,
	p.description,
	p.price,
	p.category,
	p.image_url,
	AVG(r.rating)::float8,
	p.created_at,
	p.updated_at
`

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]*Product, int, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	start := time.Now()

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.Search != "" {
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+opts.Search+"%")
	}

	if opts.Category != "" {
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)+1))
		args = append(args, opts.Category)
	}

	if opts.MinPrice != nil {
		where = append(where, fmt.Sprintf("p.price >= $%d", len(args)+1))
		args = append(args, *opts.MinPrice)
	}

	if opts.MaxPrice != nil {
		where = append(where, fmt.Sprintf("p.price <= $%d", len(args)+1))
		args = append(args, *opts.MaxPrice)
	}

	whereClause := strings.Join(where, " AND ")

	// ---------- total count ----------
	var total int
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	// ---------- sorting ----------
	orderBy := "p.created_at DESC"
	if opts.Sort != "" {
		field, dir, ok := parseSort(opts.Sort)
		if ok {
			orderBy = field + " " + dir
		}
	}

	// ---------- pagination ----------
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		WHERE ` + whereClause + `
		GROUP BY p.id
		ORDER BY ` + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	offset := (opts.Page - 1) * opts.Limit
	args = append(args, opts.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, opts.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, 0, err
	}

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	row := r.db.QueryRowContext(ctx, query, productID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, input NewProduct) (*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_name", input.Name),
	)

	query := `
		INSERT INTO products (name, description, price, category, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, price, category, image_url, created_at, updated_at
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query,
		input.Name,
		input.Description,
		input.Price,
		input.Category,
		input.ImageURL,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))

	return &p, nil
}

func (r *repository) Update(ctx context.Context, productID uuid.UUID, input NewProduct) (*Product, error) {
	query := `
		UPDATE products
		SET name = $1,
		    description = $2,
		    price = $3,
		    category = $4,
		    image_url = $5,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING id, name, description, price, category, image_url, created_at, updated_at
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query,
		input.Name,
		input.Description,
		input.Price,
		input.Category,
		input.ImageURL,
		productID,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.AverageRating,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseSort(sort string) (field, dir string, ok bool) {
	parts := strings.SplitN(sort, ":", 2)

	switch parts[0] {
	case "price":
		field = "p.price"
	case "name":
		field = "p.name"
	case "created_at":
		field = "p.created_at"
	default:
		return "", "", false
	}

	dir = "DESC"
	if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
		dir = "ASC"
	}

	return field, dir, true
}
