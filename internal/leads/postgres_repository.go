package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// querier is the subset of pgxpool.Pool used by the repository. pgxmock
// satisfies it in tests.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db querier) *PostgresRepository {
	if db == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO leads (id, issue, zip_or_city, urgency, name, phone, address, photos_count, photo_urls, source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'new')
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Issue,
		req.ZipOrCity,
		req.Urgency,
		req.Name,
		req.Phone,
		req.Address,
		req.PhotosCount,
		req.PhotoURLs,
		req.Source,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:          id.String(),
		Issue:       req.Issue,
		ZipOrCity:   req.ZipOrCity,
		Urgency:     req.Urgency,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		PhotosCount: req.PhotosCount,
		PhotoURLs:   req.PhotoURLs,
		Source:      req.Source,
		Status:      "new",
		CreatedAt:   createdAt,
	}, nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, issue, zip_or_city, urgency, name, phone, address, photos_count, photo_urls, source, status, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Issue,
		&lead.ZipOrCity,
		&lead.Urgency,
		&lead.Name,
		&lead.Phone,
		&lead.Address,
		&lead.PhotosCount,
		&lead.PhotoURLs,
		&lead.Source,
		&lead.Status,
		&lead.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}
