package catalog

// Config holds configuration for wiring the catalog at startup. The Loader
// itself is configured through options; this struct is what the application
// binds from the environment and translates into those options.
type Config struct {
	// Manifest is the path to the catalog manifest file with location
	// mappings, ancestor rules and redirections. Empty means the built-in
	// tables.
	Manifest string `mapstructure:"manifest" default:""`
	// ContentDir serves templates from a local content checkout instead of
	// object storage when set. Used for development and content authoring.
	ContentDir string `mapstructure:"content_dir" default:""`
	// RedirectSource selects where redirection entries come from
	// (manifest, database).
	RedirectSource string `mapstructure:"redirect_source" default:"manifest"`
	// AllowReload enables the HTTP cache invalidation endpoints. Reload
	// over HTTP is a development workflow; disable it on shared deployments.
	AllowReload bool `mapstructure:"allow_reload" default:"true"`
	// LoadTimeoutSeconds bounds a single backend load. Zero disables the
	// bound.
	LoadTimeoutSeconds int `mapstructure:"load_timeout_seconds" default:"120"`
}

const (
	RedirectSourceManifest = "manifest"
	RedirectSourceDatabase = "database"
)

// IsValidRedirectSource checks if the configured redirect source is valid.
func (c Config) IsValidRedirectSource() bool {
	switch c.RedirectSource {
	case RedirectSourceManifest, RedirectSourceDatabase:
		return true
	default:
		return false
	}
}
