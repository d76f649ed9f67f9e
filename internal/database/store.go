package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the connection pool with the query layer. Every operation
// is a single statement; there are no multi-step transactions.
type Store struct {
	pool *pgxpool.Pool
	*Queries
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		Queries: New(pool),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}
