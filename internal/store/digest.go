package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veracityhq/veracity/internal/domain"
)

type DigestStore struct {
	db *pgxpool.Pool
}

func NewDigestStore(db *pgxpool.Pool) *DigestStore {
	return &DigestStore{db: db}
}

func (s *DigestStore) Insert(ctx context.Context, d *domain.DailyDigest) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO daily_digests (day, topics, summary)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		d.Date, d.Topics, d.Summary,
	).Scan(&d.ID, &d.CreatedAt)
}

func (s *DigestStore) FindByDate(ctx context.Context, date string) (*domain.DailyDigest, error) {
	d := &domain.DailyDigest{}
	err := s.db.QueryRow(ctx,
		`SELECT id, day, topics, summary, created_at
		 FROM daily_digests WHERE day = $1`,
		date,
	).Scan(&d.ID, &d.Date, &d.Topics, &d.Summary, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}
