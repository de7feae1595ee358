package result

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsim/internal/domain"
	domresult "github.com/kailas-cloud/docsim/internal/domain/result"
)

// store is the consumer interface for the Redis result repository (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	LPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
}

// RedisRepo stores comparison records as hashes plus a capped recency list.
type RedisRepo struct {
	store        store
	prefix       string
	historyLimit int
}

// NewRedis creates a Redis-backed result repository. historyLimit <= 0 disables trimming.
func NewRedis(s store, prefix string, historyLimit int) *RedisRepo {
	return &RedisRepo{store: s, prefix: prefix, historyLimit: historyLimit}
}

func (r *RedisRepo) recordKey(id string) string { return r.prefix + "result:" + id }
func (r *RedisRepo) listKey() string           { return r.prefix + "results" }

// Save persists a record and pushes its id onto the recency list.
func (r *RedisRepo) Save(ctx context.Context, rec domresult.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	key := r.recordKey(rec.ID)
	if err := r.store.HSet(ctx, key, buildHashFields(rec)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.LPush(ctx, r.listKey(), rec.ID); err != nil {
		return fmt.Errorf("lpush %s: %w", r.listKey(), err)
	}
	if r.historyLimit > 0 {
		if err := r.store.LTrim(ctx, r.listKey(), 0, int64(r.historyLimit-1)); err != nil {
			return fmt.Errorf("ltrim %s: %w", r.listKey(), err)
		}
	}
	return nil
}

// Get returns a record by id.
func (r *RedisRepo) Get(ctx context.Context, id string) (domresult.Record, error) {
	key := r.recordKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domresult.Record{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domresult.Record{}, domain.ErrNotFound
	}
	return parseHashFields(id, m)
}

// List returns up to limit records, newest first. Ids whose hash is gone are skipped.
func (r *RedisRepo) List(ctx context.Context, limit int) ([]domresult.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := r.store.LRange(ctx, r.listKey(), 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", r.listKey(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}
	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	out := make([]domresult.Record, 0, len(ids))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		rec, err := parseHashFields(ids[i], m)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
