package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	db database.DBTX
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db database.DBTX) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categorySelect = `
	SELECT c.id::text, COALESCE(c.name, ''),
	       COALESCE(c.name_fr, ''), COALESCE(c.name_en, ''), COALESCE(c.name_es, ''),
	       COALESCE(c.description, ''),
	       COALESCE(c.description_fr, ''), COALESCE(c.description_en, ''), COALESCE(c.description_es, ''),
	       COALESCE(c.icon, ''), COALESCE(c.color, ''),
	       (SELECT COUNT(*) FROM event_categories ec JOIN events e ON e.id = ec.event_id
	         WHERE ec.category_id = c.id AND e.status = 'active'),
	       c.created_at
	FROM categories c
`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	c := &domain.Category{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.NameFr,
		&c.NameEn,
		&c.NameEs,
		&c.Description,
		&c.DescriptionFr,
		&c.DescriptionEn,
		&c.DescriptionEs,
		&c.Icon,
		&c.Color,
		&c.EventCount,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all categories with their active event counts
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, categorySelect+" ORDER BY c.name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, categorySelect+" WHERE c.id::text = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Create creates a category
func (r *PostgresCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO categories (id, name, name_fr, name_en, name_es, description,
			description_fr, description_en, description_es, icon, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		c.ID,
		c.Name,
		nullStringOrValue(c.NameFr),
		nullStringOrValue(c.NameEn),
		nullStringOrValue(c.NameEs),
		nullStringOrValue(c.Description),
		nullStringOrValue(c.DescriptionFr),
		nullStringOrValue(c.DescriptionEn),
		nullStringOrValue(c.DescriptionEs),
		nullStringOrValue(c.Icon),
		nullStringOrValue(c.Color),
	).Scan(&c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update updates a category
func (r *PostgresCategoryRepository) Update(ctx context.Context, c *domain.Category) (bool, error) {
	query := `
		UPDATE categories
		SET name = $2, name_fr = $3, name_en = $4, name_es = $5, description = $6,
		    description_fr = $7, description_en = $8, description_es = $9, icon = $10, color = $11
		WHERE id::text = $1
	`
	tag, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		nullStringOrValue(c.NameFr),
		nullStringOrValue(c.NameEn),
		nullStringOrValue(c.NameEs),
		nullStringOrValue(c.Description),
		nullStringOrValue(c.DescriptionFr),
		nullStringOrValue(c.DescriptionEn),
		nullStringOrValue(c.DescriptionEs),
		nullStringOrValue(c.Icon),
		nullStringOrValue(c.Color),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, ErrDuplicate
		}
		return false, fmt.Errorf("failed to update category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountEvents counts events linked to a category
func (r *PostgresCategoryRepository) CountEvents(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM event_categories WHERE category_id::text = $1", id).Scan(&count)
	return count, err
}

// Delete removes a category
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id::text = $1", id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, ErrReferenced
		}
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
