package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/repository"
)

type StoreOptions struct {
	URI       string
	Database  string // mongo database when the URI names none
	ConnectTO time.Duration
}

// OpenStore connects to the backend named by the URI scheme and verifies the
// connection with a ping before returning.
func OpenStore(ctx context.Context, opt StoreOptions) (repository.Store, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("DATABASE_URI is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 10 * time.Second
	}

	u, err := url.Parse(opt.URI)
	if err != nil {
		return nil, fmt.Errorf("parse database uri: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return openMongo(cctx, opt, strings.Trim(u.Path, "/"))
	case "redis", "rediss":
		return openRedis(cctx, opt)
	case "postgres", "postgresql":
		return openPostgres(cctx, opt)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

func openMongo(ctx context.Context, opt StoreOptions, database string) (repository.Store, error) {
	if database == "" {
		database = opt.Database
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opt.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	repo := repository.NewMongoRepository(client, database)
	if err := repo.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return repo, nil
}

func openRedis(ctx context.Context, opt StoreOptions) (repository.Store, error) {
	ropts, err := redis.ParseURL(opt.URI)
	if err != nil {
		return nil, fmt.Errorf("redis uri: %w", err)
	}

	repo := repository.NewRedisRepository(redis.NewClient(ropts))
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close(ctx)
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return repo, nil
}

func openPostgres(ctx context.Context, opt StoreOptions) (repository.Store, error) {
	pool, err := pgxpool.New(ctx, opt.URI)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	repo := repository.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}
