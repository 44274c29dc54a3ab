package manifest

import (
	"context"
	"fmt"

	"template-catalog/core/catalog"
	"template-catalog/core/database"

	"gorm.io/gorm"
)

// redirectsTable is the table deployments manage renames in when the
// redirect source is the game database instead of the manifest file.
const redirectsTable = "template_redirects"

// redirectColumns are the columns LoadRedirectsDB selects. All of them must
// exist; the schema is owned by this service's migrations.
var redirectColumns = []string{"location", "old_name", "action", "new_type", "new_name"}

type redirectRow struct {
	Location string
	OldName  string
	Action   string
	NewType  string
	NewName  string
}

// LoadRedirectsDB loads redirection entries from the template_redirects
// table. The schema is verified before querying so a missing or drifted
// table reports the actual gap instead of a bare SQL error. Entries pass the
// same validation as manifest-file entries.
func LoadRedirectsDB(ctx context.Context, db *gorm.DB) ([]catalog.RedirectionEntry, error) {
	columns, err := database.GetTableColumns(db, redirectsTable)
	if err != nil {
		return nil, fmt.Errorf("manifest: inspect %s: %w", redirectsTable, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %s not found", ErrInvalid, redirectsTable)
	}
	if missing := database.MissingColumns(columns, redirectColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: table %s is missing columns %v", ErrInvalid, redirectsTable, missing)
	}

	var rows []redirectRow
	query := fmt.Sprintf(
		"SELECT location, old_name, action, new_type, new_name FROM %s ORDER BY location, old_name",
		redirectsTable,
	)
	if err := db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("manifest: query %s: %w", redirectsTable, err)
	}

	entries := make([]catalog.RedirectionEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := redirectionEntry(redirectEntry{
			Location: row.Location,
			OldName:  row.OldName,
			Action:   row.Action,
			NewType:  row.NewType,
			NewName:  row.NewName,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s (%s, %s): %w", ErrInvalid, redirectsTable, row.Location, row.OldName, err)
		}
		entries = append(entries, entry)
	}
	if _, err := catalog.NewRedirectTable(entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, redirectsTable, err)
	}
	return entries, nil
}
