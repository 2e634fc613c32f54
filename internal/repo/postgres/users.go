package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *UsersRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

const userColumns = `id, email, username, name, last_name, password_hash, city, country, state, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Name,
		&u.LastName,
		&u.PasswordHash,
		&u.City,
		&u.Country,
		&u.State,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (repo *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := repo.observe("users.get_by_email", func() error {
		var scanErr error
		u, scanErr = scanUser(repo.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`,
			email,
		))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// Create inserts a new record and fills in the store-assigned id. A unique
// violation on email surfaces as user.ErrEmailTaken so concurrent
// registrations collapse into the same failure as the lookup-before-insert
// check.
func (repo *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	err := repo.observe("users.create", func() error {
		return repo.pool.QueryRow(
			ctx,
			`INSERT INTO users (email, username, name, last_name, password_hash, city, country, state, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id`,
			u.Email, u.Username, u.Name, u.LastName, u.PasswordHash, u.City, u.Country, u.State, u.CreatedAt, u.UpdatedAt,
		).Scan(&u.ID)
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

// Update overwrites the mutable profile fields of an existing row. The id is
// never touched.
func (repo *UsersRepo) Update(ctx context.Context, u user.User) error {
	var tag pgconn.CommandTag

	err := repo.observe("users.update", func() error {
		var execErr error
		tag, execErr = repo.pool.Exec(
			ctx,
			`UPDATE users
			 SET name = $1, last_name = $2, city = $3, country = $4, state = $5, updated_at = $6
			 WHERE email = $7`,
			u.Name, u.LastName, u.City, u.Country, u.State, time.Now().UTC(), u.Email,
		)
		return execErr
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (repo *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var users []user.User

	err := repo.observe("users.list", func() error {
		rows, queryErr := repo.pool.Query(
			ctx,
			`SELECT `+userColumns+` FROM users ORDER BY id`,
		)

		if queryErr != nil {
			return queryErr
		}

		defer rows.Close()

		for rows.Next() {
			u, scanErr := scanUser(rows)

			if scanErr != nil {
				return scanErr
			}

			users = append(users, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []user.User{}
	}

	return users, nil
}
