package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/veracityhq/veracity/internal/domain"
)

type VerdictStore struct {
	db *pgxpool.Pool
}

func NewVerdictStore(db *pgxpool.Pool) *VerdictStore {
	return &VerdictStore{db: db}
}

func (s *VerdictStore) Insert(ctx context.Context, v *domain.Verdict) error {
	var embedding *pgvector.Vector
	if len(v.Embedding) > 0 {
		vec := pgvector.NewVector(v.Embedding)
		embedding = &vec
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO verdicts (claim, status, confidence, sources, reasoning, tags, evidence, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		v.Claim, v.Status, v.Confidence, v.Sources, v.Reasoning, v.Tags, v.Evidence, embedding,
	).Scan(&v.ID, &v.CreatedAt)
}

// FindByClaim returns the most recent verdict for the exact claim text.
func (s *VerdictStore) FindByClaim(ctx context.Context, claim string) (*domain.Verdict, error) {
	v := &domain.Verdict{}
	err := s.db.QueryRow(ctx,
		`SELECT id, claim, status, confidence, sources, reasoning, tags, evidence, created_at
		 FROM verdicts WHERE claim = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		claim,
	).Scan(&v.ID, &v.Claim, &v.Status, &v.Confidence, &v.Sources, &v.Reasoning, &v.Tags, &v.Evidence, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VerdictStore) FindSimilar(ctx context.Context, embedding []float32, threshold float32, limit int) ([]domain.VerdictWithScore, error) {
	if limit <= 0 {
		limit = 3
	}

	vec := pgvector.NewVector(embedding)

	rows, err := s.db.Query(ctx,
		`SELECT id, claim, status, confidence, sources, reasoning, tags, evidence, created_at,
		        1 - (embedding <=> $1) AS score
		 FROM verdicts
		 WHERE embedding IS NOT NULL AND 1 - (embedding <=> $1) >= $2
		 ORDER BY score DESC, created_at DESC
		 LIMIT $3`,
		vec, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("find similar query: %w", err)
	}
	defer rows.Close()

	var results []domain.VerdictWithScore
	for rows.Next() {
		var vs domain.VerdictWithScore
		err := rows.Scan(
			&vs.ID, &vs.Claim, &vs.Status, &vs.Confidence, &vs.Sources, &vs.Reasoning, &vs.Tags, &vs.Evidence, &vs.CreatedAt,
			&vs.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("scan find similar row: %w", err)
		}
		results = append(results, vs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find similar rows: %w", err)
	}

	return results, nil
}

func (s *VerdictStore) ListSince(ctx context.Context, since time.Time) ([]domain.Verdict, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, claim, status, confidence, sources, reasoning, tags, evidence, created_at
		 FROM verdicts WHERE created_at >= $1
		 ORDER BY created_at ASC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verdicts []domain.Verdict
	for rows.Next() {
		var v domain.Verdict
		if err := rows.Scan(&v.ID, &v.Claim, &v.Status, &v.Confidence, &v.Sources, &v.Reasoning, &v.Tags, &v.Evidence, &v.CreatedAt); err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, rows.Err()
}
