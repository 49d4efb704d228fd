package contest

import (
	"testing"

	"fotolio-service/internal/domain/contest"

	"go.uber.org/zap"
)

func entry(score float64, jury int) *contest.PhotoEntry {
	return &contest.PhotoEntry{OverallScore: score, JuryCount: jury}
}

func TestEligibleForAward(t *testing.T) {
	s := NewContestService(nil, zap.NewNop())

	tests := []struct {
		name  string
		score float64
		jury  int
		tier  contest.AwardTier
		want  bool
	}{
		{"featured at exact threshold", 6.5, 2, contest.TierFeatured, true},
		{"featured score just below", 6.49, 2, contest.TierFeatured, false},
		{"featured jury below", 6.5, 1, contest.TierFeatured, false},
		{"shot of the day at threshold", 7.5, 3, contest.TierShotOfTheDay, true},
		{"shot of the day needs three votes", 9.9, 2, contest.TierShotOfTheDay, false},
		{"shot of the month at threshold", 8.5, 4, contest.TierShotOfTheMonth, true},
		{"shot of the year at threshold", 9.2, 5, contest.TierShotOfTheYear, true},
		{"shot of the year score below", 9.19, 5, contest.TierShotOfTheYear, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.EligibleForAward(entry(tt.score, tt.jury), tt.tier)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("unknown tier errors", func(t *testing.T) {
		if _, err := s.EligibleForAward(entry(10, 10), "platinum"); err == nil {
			t.Fatal("expected error for unknown tier")
		}
	})
}

func TestQualifyingTiersAreMonotone(t *testing.T) {
	s := NewContestService(nil, zap.NewNop())

	// A top-tier entry qualifies for every tier beneath it.
	got := s.QualifyingTiers(entry(9.5, 6))
	want := []contest.AwardTier{
		contest.TierFeatured,
		contest.TierShotOfTheDay,
		contest.TierShotOfTheMonth,
		contest.TierShotOfTheYear,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tiers, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v at position %d, got %v", want[i], i, got[i])
		}
	}

	if tiers := s.QualifyingTiers(entry(5.0, 1)); len(tiers) != 0 {
		t.Fatalf("expected no qualifying tiers, got %v", tiers)
	}
}
