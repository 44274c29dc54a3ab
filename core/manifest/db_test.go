package manifest_test

import (
	"context"
	"testing"

	"template-catalog/core/catalog"
	"template-catalog/core/manifest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func redirectSchemaRows() *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, col := range []string{"id", "location", "old_name", "action", "new_type", "new_name"} {
		rows.AddRow(col, "varchar(255)", "YES", "", nil, "")
	}
	return rows
}

func TestLoadRedirectsDB(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `template_redirects`").
		WillReturnRows(redirectSchemaRows())
	mock.ExpectQuery("SELECT location, old_name, action, new_type, new_name FROM template_redirects").
		WillReturnRows(sqlmock.NewRows([]string{"location", "old_name", "action", "new_type", "new_name"}).
			AddRow("Data/Factions/", "old_guard", "todo", "", "").
			AddRow("Data/Items/", "relic_sword", "ignore", "", "").
			AddRow("Data/Items/", "sword_old", "replace", "WeaponTemplate", "sword.iron"))

	entries, err := manifest.LoadRedirectsDB(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, catalog.RedirectToDo, entries[0].Action)
	assert.Equal(t, catalog.RedirectIgnore, entries[1].Action)
	assert.Equal(t, catalog.RedirectionEntry{
		Location: "Data/Items/",
		OldName:  "sword_old",
		Action:   catalog.RedirectReplace,
		NewType:  "WeaponTemplate",
		NewName:  "sword.iron",
	}, entries[2])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRedirectsDB_TableMissing(t *testing.T) {
	db, mock := setupMockDB(t)

	// SQLite-style inspectors report a missing table as zero columns.
	mock.ExpectQuery("SHOW COLUMNS FROM `template_redirects`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}))

	_, err := manifest.LoadRedirectsDB(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrInvalid)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadRedirectsDB_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `template_redirects`").
		WillReturnError(assert.AnError)

	_, err := manifest.LoadRedirectsDB(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoadRedirectsDB_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("location", "varchar(255)", "YES", "", nil, "").
		AddRow("old_name", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `template_redirects`").WillReturnRows(rows)

	_, err := manifest.LoadRedirectsDB(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrInvalid)
	assert.Contains(t, err.Error(), "action")
	assert.Contains(t, err.Error(), "new_name")
}

func TestLoadRedirectsDB_BadRow(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `template_redirects`").
		WillReturnRows(redirectSchemaRows())
	mock.ExpectQuery("SELECT location, old_name, action, new_type, new_name FROM template_redirects").
		WillReturnRows(sqlmock.NewRows([]string{"location", "old_name", "action", "new_type", "new_name"}).
			AddRow("Data/Items/", "sword_old", "gone", "", ""))

	_, err := manifest.LoadRedirectsDB(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrInvalid)
	assert.Contains(t, err.Error(), "sword_old")
}

func TestLoadRedirectsDB_DuplicateKey(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `template_redirects`").
		WillReturnRows(redirectSchemaRows())
	mock.ExpectQuery("SELECT location, old_name, action, new_type, new_name FROM template_redirects").
		WillReturnRows(sqlmock.NewRows([]string{"location", "old_name", "action", "new_type", "new_name"}).
			AddRow("Data/Items/", "sword_old", "ignore", "", "").
			AddRow("Data/Items/", "sword_old", "todo", "", ""))

	_, err := manifest.LoadRedirectsDB(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicateRedirect)
}
