package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
)

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func setupTestDB(t *testing.T) *database.PostgresDB {
	ctx := context.Background()

	cfg := &database.PostgresConfig{
		Host:            getEnv("POSTGRES_HOST", "localhost"),
		Port:            5432,
		User:            getEnv("POSTGRES_USER", "postgres"),
		Password:        getEnv("POSTGRES_PASSWORD", ""),
		Database:        getEnv("POSTGRES_DB", "beout"),
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 1 * time.Minute,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
	}

	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestPostgresTranslationRepository_Integration(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresTranslationRepository(db.Pool())
	ctx := context.Background()
	defer func() {
		if _, err := repo.Delete(ctx, "en", "integration-test"); err != nil {
			t.Logf("Warning: failed to cleanup test data: %v", err)
		}
	}()

	doc := &domain.TranslationDocument{
		Language:  "en",
		Namespace: "integration-test",
		Content:   map[string]any{"greeting": map[string]any{"hello": "Hello"}},
	}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Failed to create translations: %v", err)
	}

	if err := repo.Create(ctx, doc); err != ErrDuplicate {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}

	doc.Content = map[string]any{"greeting": map[string]any{"hello": "Hi"}}
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Failed to upsert translations: %v", err)
	}

	got, err := repo.Get(ctx, "en", "integration-test")
	if err != nil {
		t.Fatalf("Failed to get translations: %v", err)
	}
	if got == nil {
		t.Fatal("Expected translations, got nil")
	}
	greeting, _ := got.Content["greeting"].(map[string]any)
	if greeting["hello"] != "Hi" {
		t.Errorf("Expected upserted value Hi, got %v", greeting["hello"])
	}
}

func TestPostgresStatsRepository_Integration(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	stats, err := NewPostgresStatsRepository(db.Pool()).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Failed to compute dashboard stats: %v", err)
	}
	if stats.ConfirmedBookings > stats.TotalBookings {
		t.Errorf("Confirmed bookings %d exceed total %d", stats.ConfirmedBookings, stats.TotalBookings)
	}
}
