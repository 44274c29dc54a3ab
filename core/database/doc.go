// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. SQLite is supported
// for tests and local development via the Driver config field.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The catalog
// treats the database as optional: it only matters when template redirects are
// managed in the game database instead of the manifest file.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. The redirect source
// uses them to verify the template_redirects table before querying, so missing
// tables or drifted columns produce actionable errors.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "template_redirects")
package database
