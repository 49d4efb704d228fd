// internal/domain/plan/entity.go
package plan

import "time"

// Plan is a subscription pricing plan. Prices are minor currency units.
type Plan struct {
	ID           int64     `json:"id" db:"id"`
	Code         string    `json:"code" db:"code"`
	Name         string    `json:"name" db:"name"`
	MonthlyPrice int64     `json:"monthly_price" db:"monthly_price"`
	YearlyPrice  int64     `json:"yearly_price" db:"yearly_price"`
	IsPublic     bool      `json:"is_public" db:"is_public"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
