package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// MemoryAdapter is an in-process Adapter with the same filter semantics as
// MongoAdapter. It backs the test suite and local development without a
// running database. Documents are stored as JSON objects, so struct json
// tags define the filterable field names.
type MemoryAdapter struct {
	mu     sync.Mutex
	models map[string][]map[string]any
}

// NewMemoryAdapter returns an empty in-memory store.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{models: make(map[string][]map[string]any)}
}

func toDocument(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func matches(doc map[string]any, where []Where) bool {
	for _, w := range where {
		got := doc[w.Field]
		if w.In != nil {
			found := false
			for _, candidate := range w.In {
				if reflect.DeepEqual(got, normalize(candidate)) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, normalize(w.Value)) {
			return false
		}
	}
	return true
}

func (a *MemoryAdapter) Create(ctx context.Context, model string, doc any) error {
	d, err := toDocument(doc)
	if err != nil {
		return fmt.Errorf("error encoding %s document: %w", model, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.models[model] = append(a.models[model], d)
	return nil
}

func (a *MemoryAdapter) FindOne(ctx context.Context, model string, where []Where, out any) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, doc := range a.models[model] {
		if matches(doc, where) {
			b, err := json.Marshal(doc)
			if err != nil {
				return false, err
			}
			if err := json.Unmarshal(b, out); err != nil {
				return false, fmt.Errorf("error decoding %s document: %w", model, err)
			}
			return true, nil
		}
	}
	return false, nil
}

func (a *MemoryAdapter) FindMany(ctx context.Context, model string, where []Where, out any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	matched := make([]map[string]any, 0)
	for _, doc := range a.models[model] {
		if matches(doc, where) {
			matched = append(matched, doc)
		}
	}
	b, err := json.Marshal(matched)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("error decoding %s documents: %w", model, err)
	}
	return nil
}

func (a *MemoryAdapter) Update(ctx context.Context, model string, where []Where, patch map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, doc := range a.models[model] {
		if matches(doc, where) {
			for k, v := range patch {
				doc[k] = normalize(v)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (a *MemoryAdapter) Delete(ctx context.Context, model string, where []Where) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.models[model][:0]
	for _, doc := range a.models[model] {
		if !matches(doc, where) {
			kept = append(kept, doc)
		}
	}
	a.models[model] = kept
	return nil
}
