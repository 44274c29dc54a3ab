package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"unicode"

	"template-catalog/core/catalog"
)

// recordExt is the document extension backends recognize; anything else
// under a content folder (textures, editor droppings) is skipped.
const recordExt = ".json"

// nameProbe reads the record name without decoding the rest of the payload.
type nameProbe struct {
	Name string `json:"name"`
}

// ParseDocument parses one record document. A document is either a single
// JSON object (one record, named by its "name" field or the file stem when
// the field is absent) or a JSON array of named objects for multi-record
// documents. Payloads stay opaque; only the name is inspected.
func ParseDocument(docPath string, data []byte) ([]catalog.Record, error) {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("backend: %s: empty document", docPath)
	}

	if trimmed[0] == '[' {
		return parseMulti(docPath, trimmed)
	}

	var probe nameProbe
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("backend: %s: %w", docPath, err)
	}
	name := probe.Name
	if name == "" {
		name = stem(docPath)
	}
	return []catalog.Record{{Name: name, Data: json.RawMessage(trimmed)}}, nil
}

func parseMulti(docPath string, data []byte) ([]catalog.Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("backend: %s: %w", docPath, err)
	}

	records := make([]catalog.Record, 0, len(items))
	for i, item := range items {
		var probe nameProbe
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, fmt.Errorf("backend: %s: entry %d: %w", docPath, i, err)
		}
		// Array entries share one file, so the stem fallback would hand
		// every entry the same name; require the field instead.
		if probe.Name == "" {
			return nil, fmt.Errorf("backend: %s: entry %d has no name", docPath, i)
		}
		records = append(records, catalog.Record{Name: probe.Name, Data: item})
	}
	return records, nil
}

// stem returns the file name without directory or extension.
func stem(docPath string) string {
	base := path.Base(docPath)
	return strings.TrimSuffix(base, path.Ext(base))
}
