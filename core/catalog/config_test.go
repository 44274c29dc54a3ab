package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidRedirectSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"Manifest", RedirectSourceManifest, true},
		{"Database", RedirectSourceDatabase, true},
		{"Invalid", "spreadsheet", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{RedirectSource: tt.source}
			assert.Equal(t, tt.want, c.IsValidRedirectSource())
		})
	}
}
