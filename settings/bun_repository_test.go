package settings

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/learnpath/go-progressions/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newSettingsRepo(t *testing.T) *Repository {
	t.Helper()
	db := newTestDB(t)
	applyDDL(t, db)
	repo, err := NewRepository(RepositoryConfig{DB: db, Clock: fixedClock{now: testNow}})
	require.NoError(t, err)
	return repo
}

func TestRepository_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := newSettingsRepo(t)
	customerID := uuid.New()

	created, err := repo.UpsertSetting(ctx, Setting{
		CustomerID: customerID,
		Key:        KeyNotifications,
		Value:      map[string]any{"enabled": true, "channel": "custom"},
		UpdatedBy:  "9000000001",
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.Version)
	require.NotEqual(t, uuid.Nil, created.ID)

	updated, err := repo.UpsertSetting(ctx, Setting{
		CustomerID: customerID,
		Key:        KeyNotifications,
		Value:      map[string]any{"enabled": false},
		UpdatedBy:  "9000000002",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, 2, updated.Version)
	require.Equal(t, false, updated.Value["enabled"])

	listed, err := repo.ListSettings(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, KeyNotifications, listed[0].Key)
}

func TestRepository_UpsertRequiresKey(t *testing.T) {
	ctx := context.Background()
	repo := newSettingsRepo(t)

	_, err := repo.UpsertSetting(ctx, Setting{CustomerID: uuid.New(), Key: "  "})
	require.Error(t, err)

	_, err = repo.UpsertSetting(ctx, Setting{Key: "notifications"})
	require.ErrorIs(t, err, types.ErrCustomerIDRequired)
}

func TestRepository_DeleteSetting(t *testing.T) {
	ctx := context.Background()
	repo := newSettingsRepo(t)
	customerID := uuid.New()

	_, err := repo.UpsertSetting(ctx, Setting{
		CustomerID: customerID,
		Key:        KeyNotifications,
		Value:      map[string]any{"enabled": true},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteSetting(ctx, customerID, KeyNotifications))

	listed, err := repo.ListSettings(ctx, customerID)
	require.NoError(t, err)
	require.Empty(t, listed)

	// Deleting a missing key is a no-op.
	require.NoError(t, repo.DeleteSetting(ctx, customerID, "unknown"))
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB) {
	content, err := os.ReadFile("../data/sql/migrations/sqlite/00002_customer_settings.up.sql")
	require.NoError(t, err)
	for _, stmt := range splitStatements(string(content)) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
