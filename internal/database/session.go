package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Sessions hands out request-scoped sessions from the shared pool.
type Sessions struct {
	db *bun.DB
}

// NewSessions creates a session provider over db.
func NewSessions(db *bun.DB) *Sessions {
	return &Sessions{db: db}
}

// Open reserves a dedicated connection for one unit of work.
// The caller must Close the returned session.
func (p *Sessions) Open(ctx context.Context) (*Session, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return &Session{conn: conn}, nil
}

// Ping checks that the pool can reach the database.
func (p *Sessions) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Session is a unit-of-work boundary bound to a single connection.
// It is not safe for concurrent use.
type Session struct {
	conn   bun.Conn
	closed bool
}

// DB exposes the session connection for reads.
func (s *Session) DB() bun.IDB {
	return &s.conn
}

// Transact runs fn in a transaction on the session connection. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (s *Session) Transact(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Close releases the connection back to the pool. It is safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
