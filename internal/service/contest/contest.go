// internal/service/contest/contest.go
package contest

import (
	"context"
	"fmt"

	"fotolio-service/internal/domain/contest"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// tierThreshold is the minimum jury aggregate required for an award
// tier. Both conditions are inclusive: a 6.5 average with exactly 2
// votes qualifies for featured.
type tierThreshold struct {
	MinScore float64
	MinJury  int
}

// Thresholds are monotone: each tier up requires at least as high a
// score and as many votes as the one below, so qualifying for a tier
// implies qualifying for every tier beneath it.
var tierThresholds = map[contest.AwardTier]tierThreshold{
	contest.TierFeatured:       {MinScore: 6.5, MinJury: 2},
	contest.TierShotOfTheDay:   {MinScore: 7.5, MinJury: 3},
	contest.TierShotOfTheMonth: {MinScore: 8.5, MinJury: 4},
	contest.TierShotOfTheYear:  {MinScore: 9.2, MinJury: 5},
}

// tierOrder lists tiers lowest to highest for stable report output.
var tierOrder = []contest.AwardTier{
	contest.TierFeatured,
	contest.TierShotOfTheDay,
	contest.TierShotOfTheMonth,
	contest.TierShotOfTheYear,
}

type ContestService struct {
	contestRepo *postgres.ContestRepository
	logger      *zap.Logger
}

func NewContestService(contestRepo *postgres.ContestRepository, logger *zap.Logger) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		logger:      logger,
	}
}

// EligibleForAward reports whether an entry currently meets the
// threshold for the given tier.
func (s *ContestService) EligibleForAward(e *contest.PhotoEntry, tier contest.AwardTier) (bool, error) {
	th, ok := tierThresholds[tier]
	if !ok {
		return false, fmt.Errorf("%w: unknown award tier %q", xerrors.ErrInvalidInput, tier)
	}

	return e.OverallScore >= th.MinScore && e.JuryCount >= th.MinJury, nil
}

// QualifyingTiers lists every tier the entry currently qualifies for,
// lowest first.
func (s *ContestService) QualifyingTiers(e *contest.PhotoEntry) []contest.AwardTier {
	qualifying := []contest.AwardTier{}
	for _, tier := range tierOrder {
		if ok, _ := s.EligibleForAward(e, tier); ok {
			qualifying = append(qualifying, tier)
		}
	}
	return qualifying
}

// SubmitEntry registers a new contest submission.
func (s *ContestService) SubmitEntry(ctx context.Context, title, photographer string) (*contest.PhotoEntry, error) {
	if title == "" || photographer == "" {
		return nil, fmt.Errorf("%w: title and photographer are required", xerrors.ErrInvalidInput)
	}

	entry := &contest.PhotoEntry{Title: title, Photographer: photographer}
	if err := s.contestRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("contest entry submitted",
		zap.Int64("entry_id", entry.ID),
		zap.String("photographer", photographer))

	return entry, nil
}

// RecordJuryScore records one juror's score and returns the entry with
// its refreshed aggregate. Re-scoring by the same juror replaces the
// earlier score.
func (s *ContestService) RecordJuryScore(ctx context.Context, entryID int64, req *contest.ScoreRequest) (*contest.PhotoEntry, error) {
	if req.Score < 0 || req.Score > 10 {
		return nil, fmt.Errorf("%w: score must be between 0 and 10", xerrors.ErrInvalidInput)
	}

	entry, err := s.contestRepo.RecordScore(ctx, entryID, req.JurorID, req.Score)
	if err != nil {
		return nil, err
	}

	s.logger.Info("jury score recorded",
		zap.Int64("entry_id", entryID),
		zap.Int64("juror_id", req.JurorID),
		zap.Float64("score", req.Score),
		zap.Float64("overall", entry.OverallScore),
		zap.Int("jury_count", entry.JuryCount))

	return entry, nil
}

// GetEligibility builds the per-tier eligibility report for an entry.
func (s *ContestService) GetEligibility(ctx context.Context, entryID int64) (*contest.EligibilityReport, error) {
	entry, err := s.contestRepo.FindEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	thresholds := make(map[contest.AwardTier]bool, len(tierOrder))
	for _, tier := range tierOrder {
		ok, _ := s.EligibleForAward(entry, tier)
		thresholds[tier] = ok
	}

	return &contest.EligibilityReport{
		Entry:      entry,
		Qualifying: s.QualifyingTiers(entry),
		Thresholds: thresholds,
	}, nil
}

// GrantAward grants a tier to an entry after re-checking eligibility.
func (s *ContestService) GrantAward(ctx context.Context, entryID int64, tier contest.AwardTier) (*contest.PhotoEntry, error) {
	entry, err := s.contestRepo.FindEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.EligibleForAward(entry, tier)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("%w: entry %d does not meet the %s threshold",
			xerrors.ErrInvalidInput, entryID, tier)
	}

	for _, granted := range entry.Awards {
		if granted == string(tier) {
			return entry, nil // already granted, idempotent
		}
	}

	awards := append([]string(entry.Awards), string(tier))
	if err := s.contestRepo.SetAwards(ctx, entryID, awards); err != nil {
		return nil, err
	}
	entry.Awards = awards

	s.logger.Info("award granted",
		zap.Int64("entry_id", entryID),
		zap.String("tier", string(tier)))

	return entry, nil
}

// GetEntry retrieves a contest entry.
func (s *ContestService) GetEntry(ctx context.Context, entryID int64) (*contest.PhotoEntry, error) {
	return s.contestRepo.FindEntry(ctx, entryID)
}
