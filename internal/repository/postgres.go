package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus_market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the Postgres storage needs. Declared as an
// interface so tests can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PgStorage is the durable drop-in Storage variant backed by PostgreSQL.
// List reads order by the seq column so insertion order matches MemStorage.
type PgStorage struct {
	db DB
}

// NewPgStorage creates a Postgres-backed storage
func NewPgStorage(db DB) *PgStorage {
	return &PgStorage{db: db}
}

const productColumns = `id, name, description, price, original_price, category, brand, technical_specs,
            condition, images, seller_name, seller_phone, price_negotiable, delivery_available, is_sold, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Category, &p.Brand, &p.TechnicalSpecs,
		&p.Condition, &p.Images, &p.SellerName, &p.SellerPhone, &p.PriceNegotiable, &p.DeliveryAvailable,
		&p.IsSold, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

func (s *PgStorage) queryProducts(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// --- User methods ---

func (s *PgStorage) CreateUser(ctx context.Context, insert model.InsertUser, passwordHash string) (*model.User, error) {
	existing, err := s.GetUserByUsername(ctx, insert.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     insert.Username,
		PasswordHash: passwordHash,
	}
	sql := `INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, sql, user.ID, user.Username, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *PgStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password_hash FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, sql, id).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

func (s *PgStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password_hash FROM users WHERE username = $1`
	err := s.db.QueryRow(ctx, sql, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// --- Product methods ---

func (s *PgStorage) CreateProduct(ctx context.Context, insert model.InsertProduct) (*model.Product, error) {
	images := insert.Images
	if images == nil {
		images = []string{}
	}

	product := &model.Product{
		ID:                uuid.NewString(),
		Name:              insert.Name,
		Description:       insert.Description,
		Price:             insert.Price,
		OriginalPrice:     insert.OriginalPrice,
		Category:          insert.Category,
		Brand:             insert.Brand,
		TechnicalSpecs:    insert.TechnicalSpecs,
		Condition:         insert.Condition,
		Images:            images,
		SellerName:        insert.SellerName,
		SellerPhone:       insert.SellerPhone,
		PriceNegotiable:   insert.PriceNegotiable,
		DeliveryAvailable: insert.DeliveryAvailable,
		IsSold:            false,
		CreatedAt:         time.Now(),
	}

	sql := `INSERT INTO products (id, name, description, price, original_price, category, brand, technical_specs,
                condition, images, seller_name, seller_phone, price_negotiable, delivery_available, is_sold, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := s.db.Exec(ctx, sql,
		product.ID, product.Name, product.Description, product.Price, product.OriginalPrice, product.Category,
		product.Brand, product.TechnicalSpecs, product.Condition, product.Images, product.SellerName,
		product.SellerPhone, product.PriceNegotiable, product.DeliveryAvailable, product.IsSold, product.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *PgStorage) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE is_sold = false ORDER BY seq`
	return s.queryProducts(ctx, sql)
}

func (s *PgStorage) GetAllProductsAdmin(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products ORDER BY seq`
	return s.queryProducts(ctx, sql)
}

func (s *PgStorage) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(s.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

func (s *PgStorage) UpdateProduct(ctx context.Context, id string, updates model.UpdateProduct) (*model.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	if updates.Name != nil {
		product.Name = *updates.Name
	}
	if updates.Description != nil {
		product.Description = *updates.Description
	}
	if updates.Price != nil {
		product.Price = *updates.Price
	}
	if updates.OriginalPrice != nil {
		product.OriginalPrice = updates.OriginalPrice
	}
	if updates.Category != nil {
		product.Category = *updates.Category
	}
	if updates.Brand != nil {
		product.Brand = updates.Brand
	}
	if updates.TechnicalSpecs != nil {
		product.TechnicalSpecs = updates.TechnicalSpecs
	}
	if updates.Condition != nil {
		product.Condition = *updates.Condition
	}
	if updates.Images != nil {
		product.Images = *updates.Images
	}
	if updates.SellerName != nil {
		product.SellerName = *updates.SellerName
	}
	if updates.SellerPhone != nil {
		product.SellerPhone = *updates.SellerPhone
	}
	if updates.PriceNegotiable != nil {
		product.PriceNegotiable = *updates.PriceNegotiable
	}
	if updates.DeliveryAvailable != nil {
		product.DeliveryAvailable = *updates.DeliveryAvailable
	}

	sql := `UPDATE products
            SET name = $1, description = $2, price = $3, original_price = $4, category = $5, brand = $6,
                technical_specs = $7, condition = $8, images = $9, seller_name = $10, seller_phone = $11,
                price_negotiable = $12, delivery_available = $13
            WHERE id = $14`
	_, err = s.db.Exec(ctx, sql,
		product.Name, product.Description, product.Price, product.OriginalPrice, product.Category, product.Brand,
		product.TechnicalSpecs, product.Condition, product.Images, product.SellerName, product.SellerPhone,
		product.PriceNegotiable, product.DeliveryAvailable, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *PgStorage) MarkProductAsSold(ctx context.Context, id string) (*model.Product, error) {
	sql := `UPDATE products SET is_sold = true WHERE id = $1 RETURNING ` + productColumns
	product, err := scanProduct(s.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark product as sold: %w", err)
	}
	return product, nil
}

func (s *PgStorage) DeleteProduct(ctx context.Context, id string) (bool, error) {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// --- Request methods ---

func (s *PgStorage) CreateRequest(ctx context.Context, insert model.InsertRequest) (*model.Request, error) {
	request := &model.Request{
		ID:             uuid.NewString(),
		Title:          insert.Title,
		Category:       insert.Category,
		Description:    insert.Description,
		MaxPrice:       insert.MaxPrice,
		Urgency:        insert.Urgency,
		RequesterEmail: insert.RequesterEmail,
		IsApproved:     false,
		CreatedAt:      time.Now(),
	}
	sql := `INSERT INTO requests (id, title, category, description, max_price, urgency, requester_email, is_approved, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.Exec(ctx, sql,
		request.ID, request.Title, request.Category, request.Description, request.MaxPrice,
		request.Urgency, request.RequesterEmail, request.IsApproved, request.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

const requestColumns = `id, title, category, description, max_price, urgency, requester_email, is_approved, created_at`

func scanRequest(row pgx.Row) (*model.Request, error) {
	r := &model.Request{}
	err := row.Scan(&r.ID, &r.Title, &r.Category, &r.Description, &r.MaxPrice, &r.Urgency,
		&r.RequesterEmail, &r.IsApproved, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PgStorage) queryRequests(ctx context.Context, sql string, args ...any) ([]model.Request, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []model.Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, *r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}
	return requests, nil
}

func (s *PgStorage) GetAllRequests(ctx context.Context) ([]model.Request, error) {
	return s.queryRequests(ctx, `SELECT `+requestColumns+` FROM requests ORDER BY seq`)
}

func (s *PgStorage) GetApprovedRequests(ctx context.Context) ([]model.Request, error) {
	return s.queryRequests(ctx, `SELECT `+requestColumns+` FROM requests WHERE is_approved = true ORDER BY seq`)
}

func (s *PgStorage) ApproveRequest(ctx context.Context, id string) (*model.Request, error) {
	sql := `UPDATE requests SET is_approved = true WHERE id = $1 RETURNING ` + requestColumns
	request, err := scanRequest(s.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to approve request: %w", err)
	}
	return request, nil
}

func (s *PgStorage) DeleteRequest(ctx context.Context, id string) (bool, error) {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete request: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// --- Suggestion methods ---

func (s *PgStorage) CreateSuggestion(ctx context.Context, insert model.InsertSuggestion) (*model.Suggestion, error) {
	suggestion := &model.Suggestion{
		ID:          uuid.NewString(),
		Name:        insert.Name,
		Email:       insert.Email,
		Category:    insert.Category,
		Priority:    insert.Priority,
		Description: insert.Description,
		CreatedAt:   time.Now(),
	}
	sql := `INSERT INTO suggestions (id, name, email, category, priority, description, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.Exec(ctx, sql,
		suggestion.ID, suggestion.Name, suggestion.Email, suggestion.Category,
		suggestion.Priority, suggestion.Description, suggestion.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return suggestion, nil
}

func (s *PgStorage) GetAllSuggestions(ctx context.Context) ([]model.Suggestion, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, email, category, priority, description, created_at
            FROM suggestions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []model.Suggestion{}
	for rows.Next() {
		var sg model.Suggestion
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.Email, &sg.Category, &sg.Priority, &sg.Description, &sg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		suggestions = append(suggestions, sg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suggestion rows: %w", err)
	}
	return suggestions, nil
}

func (s *PgStorage) DeleteSuggestion(ctx context.Context, id string) (bool, error) {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM suggestions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete suggestion: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// --- Flag methods ---

func (s *PgStorage) CreateFlag(ctx context.Context, insert model.InsertFlag) (*model.Flag, error) {
	flag := &model.Flag{
		ID:            uuid.NewString(),
		ProductID:     insert.ProductID,
		ReporterName:  insert.ReporterName,
		ReporterEmail: insert.ReporterEmail,
		Reason:        insert.Reason,
		Description:   insert.Description,
		CreatedAt:     time.Now(),
	}
	sql := `INSERT INTO flags (id, product_id, reporter_name, reporter_email, reason, description, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.Exec(ctx, sql,
		flag.ID, flag.ProductID, flag.ReporterName, flag.ReporterEmail,
		flag.Reason, flag.Description, flag.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flag: %w", err)
	}
	return flag, nil
}

func (s *PgStorage) GetAllFlags(ctx context.Context) ([]model.Flag, error) {
	rows, err := s.db.Query(ctx, `SELECT id, product_id, reporter_name, reporter_email, reason, description, created_at
            FROM flags ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query flags: %w", err)
	}
	defer rows.Close()

	flags := []model.Flag{}
	for rows.Next() {
		var f model.Flag
		if err := rows.Scan(&f.ID, &f.ProductID, &f.ReporterName, &f.ReporterEmail, &f.Reason, &f.Description, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flag row: %w", err)
		}
		flags = append(flags, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flag rows: %w", err)
	}
	return flags, nil
}

func (s *PgStorage) DeleteFlag(ctx context.Context, id string) (bool, error) {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM flags WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete flag: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ResolveFlag runs the settle-flag steps in one transaction so a deleted
// product can never leave its flag behind on partial failure.
func (s *PgStorage) ResolveFlag(ctx context.Context, id string, action string) (bool, error) {
	if action != model.FlagActionDismiss && action != model.FlagActionRemoveProduct {
		return false, ErrUnknownFlagAction
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID string
	err = tx.QueryRow(ctx, `SELECT product_id FROM flags WHERE id = $1`, id).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find flag: %w", err)
	}

	if action == model.FlagActionRemoveProduct {
		if _, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID); err != nil {
			return false, fmt.Errorf("failed to delete flagged product: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flags WHERE id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete flag: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit flag resolution: %w", err)
	}
	return true, nil
}

// --- Statistics ---

func (s *PgStorage) GetStats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}

	sql := `SELECT COUNT(*),
                   COALESCE(SUM(price), 0),
                   COUNT(DISTINCT seller_phone)
            FROM products WHERE is_sold = false`
	if err := s.db.QueryRow(ctx, sql).Scan(&stats.TotalProducts, &stats.TotalValue, &stats.ActiveSellers); err != nil {
		return nil, fmt.Errorf("failed to get product stats: %w", err)
	}

	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE is_approved = false`).Scan(&stats.PendingRequests); err != nil {
		return nil, fmt.Errorf("failed to get request stats: %w", err)
	}
	return stats, nil
}
