package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
)

const projectKeyPrefix = "project:" // project:{id} -> JSON document

// maxUpdateAttempts bounds WATCH retries under write contention on one key.
const maxUpdateAttempts = 100

// RedisRepository stores each project as a JSON document under its own key.
type RedisRepository struct {
	client *redis.Client
	now    Clock
}

// NewRedisRepository creates a new RedisRepository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, now: domain.Now}
}

func (r *RedisRepository) Insert(ctx context.Context, in domain.CreateInput) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := domain.NewProject(uuid.NewString(), in, r.now())
	data, err := json.Marshal(p)
	if err != nil {
		return nil, storageErr("marshal project", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(p.ID), data, 0).Result()
	if err != nil {
		return nil, storageErr("insert project", err)
	}
	if !ok {
		return nil, storageErr("insert project", errors.New("id collision"))
	}
	return p, nil
}

func (r *RedisRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		return nil, r.mapErr("find project", err)
	}
	return decodeProject(data)
}

// UpdateByID applies patch inside a WATCH transaction. A transaction aborted
// by a concurrent write to the same key is re-run against the fresh document.
func (r *RedisRepository) UpdateByID(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	key := r.key(id)
	var updated *domain.Project
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		p, err := decodeProject(data)
		if err != nil {
			return err
		}

		patch.ApplyTo(p, r.now())
		out, err := json.Marshal(p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = p
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			if ctx.Err() != nil {
				return nil, storageErr("update project", ctx.Err())
			}
			continue
		}
		if err != nil {
			return nil, r.mapErr("update project", err)
		}
		return updated, nil
	}
	return nil, storageErr("update project", redis.TxFailedErr)
}

func (r *RedisRepository) DeleteByID(ctx context.Context, id string) (*domain.Project, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	data, err := r.client.GetDel(ctx, r.key(id)).Bytes()
	if err != nil {
		return nil, r.mapErr("delete project", err)
	}
	return decodeProject(data)
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close(context.Context) error {
	return r.client.Close()
}

func (r *RedisRepository) key(id string) string {
	return projectKeyPrefix + id
}

func (r *RedisRepository) mapErr(op string, err error) error {
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return storageErr(op, err)
}

func decodeProject(data []byte) (*domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, storageErr("decode project", err)
	}
	return &p, nil
}

// canonicalID normalises a UUID id; ok is false for anything that is not one.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
