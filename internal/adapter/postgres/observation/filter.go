package observation

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// normalizeLimit applies the default and clamps the maximum.
func normalizeLimit(limit int) uint64 {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return uint64(limit)
}

// buildSelect builds the filtered SELECT, newest first.
func buildSelect(f domain.ObservationFilter) sq.SelectBuilder {
	b := sq.Select(observationColumnList...).
		From("observations").
		PlaceholderFormat(sq.Dollar)

	if f.SessionID != nil {
		b = b.Where(sq.Eq{"session_id": *f.SessionID})
	}
	if f.UserID != nil {
		b = b.Where(sq.Eq{"user_id": *f.UserID})
	}
	if f.GrammarFeature != nil {
		b = b.Where(sq.Eq{"grammar_feature": *f.GrammarFeature})
	}
	if f.PerformanceLevel != nil {
		b = b.Where(sq.Eq{"performance_level": string(*f.PerformanceLevel)})
	}

	return b.OrderBy("created_at DESC", "id DESC").Limit(normalizeLimit(f.Limit))
}
