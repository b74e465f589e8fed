package entity

import "time"

type Subtask struct {
	ID                int        `json:"id"`
	TaskID            int        `json:"task_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Completed         bool       `json:"completed"`
	Order             int        `json:"order"`
	Priority          Priority   `json:"priority"`
	DueDate           *time.Time `json:"due_date"`
	Reminder          *time.Time `json:"reminder"`
	EstimatedDuration *Duration  `json:"estimated_duration"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

func (s Subtask) IsCompleted() bool {
	return s.Completed
}

// SetCompleted - та же связка completed/completed_at, что и у Task
func (s *Subtask) SetCompleted(completed bool, now time.Time) {
	s.Completed = completed
	s.CompletedAt = completionStamp(completed, s.CompletedAt, now)
}

func (s *Subtask) IsOverdue(now time.Time) bool {
	return isOverdue(s.DueDate, s.Completed, now)
}

func (s *Subtask) DaysUntilDue(now time.Time) *int {
	return daysUntil(s.DueDate, now)
}

func (s *Subtask) Validate() error {
	if err := validateTitle(s.Title); err != nil {
		return err
	}
	if !s.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if s.Order < 0 {
		return ErrInvalidOrder
	}
	if s.EstimatedDuration != nil && *s.EstimatedDuration < 0 {
		return ErrInvalidDuration
	}
	return nil
}

type SubtaskDetail struct {
	Subtask
	IsOverdue     bool   `json:"is_overdue"`
	DaysUntilDue  *int   `json:"days_until_due"`
	PriorityColor string `json:"priority_color"`
}

func NewSubtaskDetail(s *Subtask, now time.Time) SubtaskDetail {
	return SubtaskDetail{
		Subtask:       *s,
		IsOverdue:     s.IsOverdue(now),
		DaysUntilDue:  s.DaysUntilDue(now),
		PriorityColor: s.Priority.Color(),
	}
}

type CreateSubtaskRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Completed         bool       `json:"completed"`
	Order             int        `json:"order"`
	Priority          Priority   `json:"priority"`
	DueDate           *time.Time `json:"due_date"`
	Reminder          *time.Time `json:"reminder"`
	EstimatedDuration *Duration  `json:"estimated_duration"`
	Notes             string     `json:"notes"`
}

type UpdateSubtaskRequest struct {
	Title             *string             `json:"title"`
	Description       *string             `json:"description"`
	Completed         *bool               `json:"completed"`
	Order             *int                `json:"order"`
	Priority          *Priority           `json:"priority"`
	DueDate           Nullable[time.Time] `json:"due_date"`
	Reminder          Nullable[time.Time] `json:"reminder"`
	EstimatedDuration Nullable[Duration]  `json:"estimated_duration"`
	Notes             *string             `json:"notes"`
}

func (r *UpdateSubtaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Completed == nil && r.Order == nil &&
		r.Priority == nil && !r.DueDate.Set && !r.Reminder.Set &&
		!r.EstimatedDuration.Set && r.Notes == nil
}
