package models

import (
	"time"

	"github.com/google/uuid"
)

/*
    Column     |           Type           | Collation | Nullable |      Default
---------------+--------------------------+-----------+----------+--------------------
 user_id       | uuid                     |           | not null | uuid_generate_v4()
 username      | character varying(64)    |           | not null |
 password_hash | character varying(128)   |           | not null |
 created_at    | timestamp with time zone |           | not null | now()

 Unique index on username.
*/

// User model definition
type User struct {
	UserID       uuid.UUID `db:"user_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
