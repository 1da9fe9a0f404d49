// ================== internal/features/goals/model.go ==================
package goals

import (
	"encoding/json"
	"time"

	"github.com/xyz-asif/goalpath/internal/pkg/datetime"
)

// CompletionThreshold is the progress at which a goal counts as completed.
const CompletionThreshold = 100

// Goal represents a personal goal owned by a user
// @Description Personal goal with progress tracking. `completed` is derived from progress.
type Goal struct {
	ID          int64          `json:"id" example:"42"`
	UserID      string         `json:"userId" example:"7"`
	Title       string         `json:"title" example:"Run 5k"`
	Description string         `json:"description" example:"Three runs a week"`
	Progress    int            `json:"progress" example:"40"`
	TargetDate  *datetime.Date `json:"targetDate" swaggertype:"string" example:"2025-12-31"`
	CreatedAt   time.Time      `json:"createdAt" example:"2025-01-01T00:00:00Z"`
}

// NewGoal builds a goal with no progress, stamped with the current time.
func NewGoal(userID, title, description string, targetDate *datetime.Date) *Goal {
	return &Goal{
		UserID:      userID,
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		CreatedAt:   time.Now(),
	}
}

// Completed reports whether the goal has reached the completion threshold.
func (g *Goal) Completed() bool {
	return g.Progress >= CompletionThreshold
}

// SetProgress updates progress; completion follows from it.
func (g *Goal) SetProgress(progress int) {
	g.Progress = progress
}

type goalJSON struct {
	ID          int64          `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Progress    int            `json:"progress"`
	TargetDate  *datetime.Date `json:"targetDate"`
	Completed   bool           `json:"completed"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// MarshalJSON adds the derived completed flag.
func (g Goal) MarshalJSON() ([]byte, error) {
	return json.Marshal(goalJSON{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Progress:    g.Progress,
		TargetDate:  g.TargetDate,
		Completed:   g.Completed(),
		CreatedAt:   g.CreatedAt,
	})
}

// GoalRequest is the body accepted by create and update.
// Any completed or createdAt value in the body is ignored.
// @Description Goal fields accepted on create and update
type GoalRequest struct {
	UserID      string         `json:"userId" example:"7"`
	Title       string         `json:"title" example:"Run 5k"`
	Description string         `json:"description" example:"Three runs a week"`
	Progress    int            `json:"progress" example:"0"`
	TargetDate  *datetime.Date `json:"targetDate" swaggertype:"string" example:"2025-12-31"`
}

// ToGoal builds a new goal from the request.
func (r *GoalRequest) ToGoal() *Goal {
	g := NewGoal(r.UserID, r.Title, r.Description, r.TargetDate)
	g.SetProgress(r.Progress)
	return g
}
