// Package person implements the Person repository using PostgreSQL.
package person

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/extrato-backend/internal/adapter/postgres"
	"github.com/heartmarshall/extrato-backend/internal/domain"
)

const table = "people"

var columns = []string{
	"id", "contact", "first_name_slug", "magic_token",
	"phone1", "phone2", "phone3", "active", "created_at",
}

// Repo provides person persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new person repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListAll returns every person ordered by id.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Person, error) {
	return r.list(ctx, postgres.Builder().Select(columns...).From(table).OrderBy("id"))
}

// List returns people ordered by contact. When activeOnly is set, inactive
// people are left out.
func (r *Repo) List(ctx context.Context, activeOnly bool) ([]domain.Person, error) {
	q := postgres.Builder().Select(columns...).From(table).OrderBy("contact")
	if activeOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}
	return r.list(ctx, q)
}

// GetBySlug returns the person owning the given first-name slug and token.
func (r *Repo) GetBySlug(ctx context.Context, firstNameSlug, token string) (domain.Person, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"first_name_slug": firstNameSlug, "magic_token": token})
	return r.get(ctx, q, firstNameSlug+domain.SlugSeparator+token)
}

// GetByContact returns the person with the given contact.
func (r *Repo) GetByContact(ctx context.Context, contact string) (domain.Person, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"contact": contact})
	return r.get(ctx, q, contact)
}

// GetByID returns the person with the given id.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Person, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id})
	return r.get(ctx, q, id)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a person and returns it with its assigned id and creation
// time. A token already owned by someone else yields domain.ErrTokenCollision
// without aborting the surrounding transaction. A duplicate contact yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p domain.Person) (domain.Person, error) {
	q := postgres.Builder().Insert(table).
		Columns("contact", "first_name_slug", "magic_token", "phone1", "phone2", "phone3", "active").
		Values(p.Contact, p.FirstNameSlug, p.MagicToken, p.Phone1, p.Phone2, p.Phone3, p.Active).
		Suffix("ON CONFLICT (magic_token) DO NOTHING RETURNING " + strings.Join(columns, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.Person{}, fmt.Errorf("build person insert: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	created, err := scanPerson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Person{}, fmt.Errorf("person %s: %w", p.Contact, domain.ErrTokenCollision)
	}
	if err != nil {
		return domain.Person{}, postgres.MapError(err, "person", p.Contact)
	}
	return created, nil
}

// UpdatePhones sets the phones of the person with the given contact. It
// reports false when no person has that contact or the phones were already
// equal to the given ones.
func (r *Repo) UpdatePhones(ctx context.Context, contact string, phones domain.Phones) (bool, error) {
	q := postgres.Builder().Update(table).
		Set("phone1", phones.Phone1).
		Set("phone2", phones.Phone2).
		Set("phone3", phones.Phone3).
		Where(squirrel.Eq{"contact": contact}).
		Where(squirrel.Or{
			squirrel.Expr("phone1 IS DISTINCT FROM ?::text", phones.Phone1),
			squirrel.Expr("phone2 IS DISTINCT FROM ?::text", phones.Phone2),
			squirrel.Expr("phone3 IS DISTINCT FROM ?::text", phones.Phone3),
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build phones update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "person", contact)
	}
	return tag.RowsAffected() > 0, nil
}

// SetActive toggles whether the person appears in the active listing.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := postgres.Builder().Update(table).
		Set("active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build active update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "person", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("person %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) get(ctx context.Context, q squirrel.SelectBuilder, key any) (domain.Person, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return domain.Person{}, fmt.Errorf("build person select: %w", err)
	}

	p, err := scanPerson(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Person{}, postgres.MapError(err, "person", key)
	}
	return p, nil
}

func (r *Repo) list(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Person, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build person select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	people := make([]domain.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

func scanPerson(row pgx.Row) (domain.Person, error) {
	var p domain.Person
	err := row.Scan(
		&p.ID, &p.Contact, &p.FirstNameSlug, &p.MagicToken,
		&p.Phone1, &p.Phone2, &p.Phone3, &p.Active, &p.CreatedAt,
	)
	return p, err
}
