package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
)

const projectColumns = `id::text, title, short_des, description, image, created_at, updated_at`

// PostgresRepository keeps projects in a single postgres table.
type PostgresRepository struct {
	db  *pgxpool.Pool
	now Clock
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, now: domain.Now}
}

// EnsureSchema creates the projects table if it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists projects (
  id          uuid primary key,
  title       text not null,
  short_des   text not null,
  description text not null,
  image       text not null,
  created_at  timestamptz not null,
  updated_at  timestamptz not null
);
`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return storageErr("create projects table", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, in domain.CreateInput) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	const q = `
insert into projects (id, title, short_des, description, image, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $6)
returning ` + projectColumns + `;
`
	row := r.db.QueryRow(ctx, q, uuid.New(), in.Title, in.ShortDescription, in.Description, in.Image, r.now())
	return r.scan(row, "insert project")
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	const q = `
select ` + projectColumns + `
from projects
where id = $1;
`
	return r.scan(r.db.QueryRow(ctx, q, uid), "find project")
}

// UpdateByID writes only the non-nil patch fields; updated_at always moves forward.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	const q = `
update projects
set title       = coalesce($2, title),
    short_des   = coalesce($3, short_des),
    description = coalesce($4, description),
    image       = coalesce($5, image),
    updated_at  = greatest($6, updated_at + interval '1 millisecond')
where id = $1
returning ` + projectColumns + `;
`
	row := r.db.QueryRow(ctx, q, uid, patch.Title, patch.ShortDescription, patch.Description, patch.Image, r.now())
	return r.scan(row, "update project")
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (*domain.Project, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	const q = `
delete from projects
where id = $1
returning ` + projectColumns + `;
`
	return r.scan(r.db.QueryRow(ctx, q, uid), "delete project")
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresRepository) Close(context.Context) error {
	r.db.Close()
	return nil
}

func (r *PostgresRepository) scan(row pgx.Row, op string) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.ShortDescription, &p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr(op, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
