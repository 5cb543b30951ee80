package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/db"
)

// HistoryStore defines the database operations needed to list submissions
type HistoryStore interface {
	GetSubmissions(ctx context.Context) ([]db.Submission, error)
}

// ListSubmissions returns stored submissions, latest week first. Resubmissions of the same
// week are ordered newest first. A positive limit keeps only the first limit entries.
func ListSubmissions(ctx context.Context, store HistoryStore, logger *zap.Logger, limit int) ([]db.Submission, error) {
	logger.Debug("Listing submissions", zap.Int("limit", limit))

	submissions, err := store.GetSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	sort.SliceStable(submissions, func(i, j int) bool {
		if submissions[i].WeekStart != submissions[j].WeekStart {
			return submissions[i].WeekStart > submissions[j].WeekStart
		}
		return submissions[i].SubmittedAt > submissions[j].SubmittedAt
	})

	if limit > 0 && len(submissions) > limit {
		submissions = submissions[:limit]
	}

	return submissions, nil
}
