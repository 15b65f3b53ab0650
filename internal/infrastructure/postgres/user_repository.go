package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, phone, role, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = entity.RoleCustomer
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.Password, u.Name, u.Phone, string(u.Role))

	return translate("create user", row.Scan(&u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetWithAddresses(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, street, city, state, zip, is_default, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC
	`, id)
	if err != nil {
		return nil, translate("list addresses", err)
	}
	defer rows.Close()

	u.Addresses = []entity.Address{}
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.Zip, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, translate("scan address", err)
		}
		u.Addresses = append(u.Addresses, a)
	}
	return u, translate("list addresses", rows.Err())
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var role string
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Phone,
		&role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate(op, err)
	}
	u.Role = entity.Role(role)
	return u, nil
}
