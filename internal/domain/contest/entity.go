// internal/domain/contest/entity.go
package contest

import (
	"time"

	"github.com/lib/pq"
)

// AwardTier is a contest award level. Tiers are strictly ordered:
// each higher tier requires a higher score and more jury votes.
type AwardTier string

const (
	TierFeatured       AwardTier = "featured"
	TierShotOfTheDay   AwardTier = "shot_of_the_day"
	TierShotOfTheMonth AwardTier = "shot_of_the_month"
	TierShotOfTheYear  AwardTier = "shot_of_the_year"
)

// PhotoEntry is a contest submission with its jury aggregate.
// OverallScore is the mean of all jury scores for the entry.
type PhotoEntry struct {
	ID           int64          `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Photographer string         `json:"photographer" db:"photographer"`
	OverallScore float64        `json:"overall_score" db:"overall_score"`
	JuryCount    int            `json:"jury_count" db:"jury_count"`
	Awards       pq.StringArray `json:"awards" db:"awards"`
	SubmittedAt  time.Time      `json:"submitted_at" db:"submitted_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// JuryScore is a single juror's score for an entry, 0-10.
type JuryScore struct {
	ID        int64     `json:"id" db:"id"`
	EntryID   int64     `json:"entry_id" db:"entry_id"`
	JurorID   int64     `json:"juror_id" db:"juror_id"`
	Score     float64   `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type ScoreRequest struct {
	JurorID int64   `json:"juror_id" binding:"required"`
	Score   float64 `json:"score" binding:"min=0,max=10"`
}

// EligibilityReport lists, per tier, whether the entry currently
// qualifies under the threshold table.
type EligibilityReport struct {
	Entry      *PhotoEntry        `json:"entry"`
	Qualifying []AwardTier        `json:"qualifying_tiers"`
	Thresholds map[AwardTier]bool `json:"eligibility"`
}
