package result

import (
	"context"
	"time"

	domresult "github.com/kailas-cloud/docsim/internal/domain/result"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	lpushFn        func(ctx context.Context, key string, values ...string) error
	lrangeFn       func(ctx context.Context, key string, start, stop int64) ([]string, error)
	ltrimFn        func(ctx context.Context, key string, start, stop int64) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) LPush(ctx context.Context, key string, values ...string) error {
	if m.lpushFn != nil {
		return m.lpushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func (m *mockStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	if m.ltrimFn != nil {
		return m.ltrimFn(ctx, key, start, stop)
	}
	return nil
}

func sampleRecord(id string, score float64, at time.Time) domresult.Record {
	return domresult.Record{
		ID:        id,
		FileA:     "essay_a.docx",
		FileB:     "essay_b.pdf",
		Score:     score,
		CreatedAt: at,
	}
}
