package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/beout/beout-admin/pkg/translation"
	"github.com/jackc/pgx/v5"
)

// PostgresTranslationRepository implements TranslationRepository using PostgreSQL.
// Each row holds one namespace of one language as a jsonb document.
type PostgresTranslationRepository struct {
	db database.DBTX
}

// NewPostgresTranslationRepository creates a new PostgresTranslationRepository
func NewPostgresTranslationRepository(db database.DBTX) *PostgresTranslationRepository {
	return &PostgresTranslationRepository{db: db}
}

func scanTranslation(row pgx.Row) (*domain.TranslationDocument, error) {
	doc := &domain.TranslationDocument{}
	if err := row.Scan(&doc.Language, &doc.Namespace, &doc.Content, &doc.UpdatedBy, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if doc.Content == nil {
		doc.Content = map[string]any{}
	}
	return doc, nil
}

// Get retrieves one namespace of one language
func (r *PostgresTranslationRepository) Get(ctx context.Context, language, namespace string) (*domain.TranslationDocument, error) {
	query := `
		SELECT language, namespace, content, COALESCE(updated_by::text, ''), updated_at
		FROM translations
		WHERE language = $1 AND namespace = $2
	`
	doc, err := scanTranslation(r.db.QueryRow(ctx, query, language, namespace))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// ListLanguages lists languages that have stored namespaces with their count
func (r *PostgresTranslationRepository) ListLanguages(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, "SELECT language, COUNT(*)::int FROM translations GROUP BY language")
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	languages := make(map[string]int)
	for rows.Next() {
		var lang string
		var count int
		if err := rows.Scan(&lang, &count); err != nil {
			return nil, err
		}
		languages[lang] = count
	}
	return languages, rows.Err()
}

// ListNamespaces lists namespaces stored for a language
func (r *PostgresTranslationRepository) ListNamespaces(ctx context.Context, language string) ([]*domain.NamespaceInfo, error) {
	docs, err := r.ListByLanguage(ctx, language)
	if err != nil {
		return nil, err
	}

	infos := make([]*domain.NamespaceInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, &domain.NamespaceInfo{
			Namespace: doc.Namespace,
			KeyCount:  translation.CountKeys(doc.Content),
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return infos, nil
}

// ListByLanguage retrieves every namespace of a language
func (r *PostgresTranslationRepository) ListByLanguage(ctx context.Context, language string) ([]*domain.TranslationDocument, error) {
	query := `
		SELECT language, namespace, content, COALESCE(updated_by::text, ''), updated_at
		FROM translations
		WHERE language = $1
		ORDER BY namespace ASC
	`
	rows, err := r.db.Query(ctx, query, language)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	defer rows.Close()

	docs := make([]*domain.TranslationDocument, 0)
	for rows.Next() {
		doc, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Create inserts a namespace, failing on duplicates
func (r *PostgresTranslationRepository) Create(ctx context.Context, doc *domain.TranslationDocument) error {
	query := `
		INSERT INTO translations (language, namespace, content, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		doc.Language, doc.Namespace, doc.Content, nullStringOrValue(doc.UpdatedBy),
	).Scan(&doc.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create translations: %w", err)
	}
	return nil
}

// Upsert replaces a namespace, creating it when missing
func (r *PostgresTranslationRepository) Upsert(ctx context.Context, doc *domain.TranslationDocument) error {
	query := `
		INSERT INTO translations (language, namespace, content, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (language, namespace) DO UPDATE SET
			content = EXCLUDED.content,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		doc.Language, doc.Namespace, doc.Content, nullStringOrValue(doc.UpdatedBy),
	).Scan(&doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save translations: %w", err)
	}
	return nil
}

// Delete removes a namespace
func (r *PostgresTranslationRepository) Delete(ctx context.Context, language, namespace string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM translations WHERE language = $1 AND namespace = $2", language, namespace)
	if err != nil {
		return false, fmt.Errorf("failed to delete translations: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
