package db

import (
	"context"
)

const createUser = `
INSERT INTO users (full_name, email, hashed_password, role)
VALUES ($1, $2, $3, $4)
RETURNING id, full_name, email, hashed_password, role, created_at
`

func (store *SQLStore) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := store.connPool.QueryRow(ctx, createUser,
		arg.FullName,
		arg.Email,
		arg.HashedPassword,
		arg.Role,
	)

	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, full_name, email, hashed_password, role, created_at
FROM users
WHERE email = $1
`

func (store *SQLStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := store.connPool.QueryRow(ctx, getUserByEmail, email)

	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}
