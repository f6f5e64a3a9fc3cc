package model

import "github.com/uptrace/bun"

// User is the only persisted entity. ID is assigned by the database on insert.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Name  string `bun:"name,notnull" json:"name"`
	Email string `bun:"email,nullzero" json:"email,omitempty"`
}
