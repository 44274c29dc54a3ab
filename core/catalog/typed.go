package catalog

import (
	"context"
	"encoding/json"
	"fmt"
)

// Decode unmarshals one record payload into T.
func Decode[T any](rec Record) (T, error) {
	var out T
	if err := json.Unmarshal(rec.Data, &out); err != nil {
		return out, fmt.Errorf("catalog: decoding %s %q: %w", rec.Type, rec.Name, err)
	}
	return out, nil
}

// DecodeAll unmarshals every record payload into T, preserving order.
func DecodeAll[T any](records []Record) ([]T, error) {
	out := make([]T, len(records))
	for i, rec := range records {
		if err := json.Unmarshal(rec.Data, &out[i]); err != nil {
			return nil, fmt.Errorf("catalog: decoding %s %q: %w", rec.Type, rec.Name, err)
		}
	}
	return out, nil
}

// GetAs looks up one record and decodes its payload into T.
func GetAs[T any](ctx context.Context, l *Loader, t TemplateType, name string) (T, error) {
	rec, err := l.Get(ctx, t, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](rec)
}

// GetAllAs loads every record of type t and decodes the payloads into T.
func GetAllAs[T any](ctx context.Context, l *Loader, t TemplateType) ([]T, error) {
	records, err := l.GetAll(ctx, t)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](records)
}
