package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veracityhq/veracity/internal/domain"
)

type AnalysisStore struct {
	db *pgxpool.Pool
}

func NewAnalysisStore(db *pgxpool.Pool) *AnalysisStore {
	return &AnalysisStore{db: db}
}

func (s *AnalysisStore) Insert(ctx context.Context, a *domain.WebpageAnalysis) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO webpage_analyses (url, title, summary, claims, verdicts, credibility)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.URL, a.Title, a.Summary, a.Claims, a.Verdicts, a.Credibility,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *AnalysisStore) FindByURL(ctx context.Context, url string) (*domain.WebpageAnalysis, error) {
	a := &domain.WebpageAnalysis{}
	err := s.db.QueryRow(ctx,
		`SELECT id, url, title, summary, claims, verdicts, credibility, created_at
		 FROM webpage_analyses WHERE url = $1`,
		url,
	).Scan(&a.ID, &a.URL, &a.Title, &a.Summary, &a.Claims, &a.Verdicts, &a.Credibility, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AnalysisStore) ListSince(ctx context.Context, since time.Time) ([]domain.WebpageAnalysis, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, url, title, summary, claims, verdicts, credibility, created_at
		 FROM webpage_analyses WHERE created_at >= $1
		 ORDER BY created_at ASC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []domain.WebpageAnalysis
	for rows.Next() {
		var a domain.WebpageAnalysis
		if err := rows.Scan(&a.ID, &a.URL, &a.Title, &a.Summary, &a.Claims, &a.Verdicts, &a.Credibility, &a.CreatedAt); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}
