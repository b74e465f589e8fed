package entity

import (
	"time"
	"unicode/utf8"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const MaxTitleLength = 200

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Color - цвет приоритета для отображения
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#28a745"
	case PriorityMedium:
		return "#ffc107"
	case PriorityHigh:
		return "#dc3545"
	}
	return "#6c757d"
}

type Task struct {
	ID                int        `json:"id"`
	OwnerID           int        `json:"owner_id"`
	ListID            *int       `json:"task_list"`
	CategoryID        *int       `json:"category"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	DueDate           *time.Time `json:"due_date"`
	Completed         bool       `json:"completed"`
	Priority          Priority   `json:"priority"`
	Reminder          *time.Time `json:"reminder"`
	EstimatedDuration *Duration  `json:"estimated_duration"`
	TagIDs            []int      `json:"tags"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

func (t Task) IsCompleted() bool {
	return t.Completed
}

// SetCompleted - единственный путь изменения флага completed.
// completed_at выставляется при первом переходе в true и сбрасывается при false.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	t.Completed = completed
	t.CompletedAt = completionStamp(completed, t.CompletedAt, now)
}

// Complete отмечает задачу выполненной, если выполнены все её подзадачи
func (t *Task) Complete(subtasks []Subtask, now time.Time) error {
	if !CanBeCompleted(subtasks) {
		return ErrIncompleteSubtasks
	}
	t.SetCompleted(true, now)
	return nil
}

// Uncomplete идемпотентен
func (t *Task) Uncomplete() {
	t.SetCompleted(false, time.Time{})
}

func (t *Task) IsOverdue(now time.Time) bool {
	return isOverdue(t.DueDate, t.Completed, now)
}

func (t *Task) DaysUntilDue(now time.Time) *int {
	return daysUntil(t.DueDate, now)
}

func (t *Task) Validate() error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if t.EstimatedDuration != nil && *t.EstimatedDuration < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// CanBeCompleted - задачу без подзадач можно завершить всегда
func CanBeCompleted(subtasks []Subtask) bool {
	completed, total := CountCompleted(subtasks)
	return total == 0 || completed == total
}

func completionStamp(completed bool, current *time.Time, now time.Time) *time.Time {
	if !completed {
		return nil
	}
	if current != nil {
		return current
	}
	stamp := now
	return &stamp
}

func isOverdue(due *time.Time, completed bool, now time.Time) bool {
	if due == nil || completed {
		return false
	}
	return now.After(*due)
}

// daysUntil считает разницу календарных дат в часовом поясе now
func daysUntil(due *time.Time, now time.Time) *int {
	if due == nil {
		return nil
	}
	d := due.In(now.Location())
	dueDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(dueDay.Sub(today).Hours() / 24)
	return &days
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// TaskDetail - задача вместе с подзадачами, историей и вычисляемыми полями
type TaskDetail struct {
	Task
	Subtasks                     []SubtaskDetail    `json:"subtasks"`
	History                      *TaskHistoryDetail `json:"history"`
	IsOverdue                    bool               `json:"is_overdue"`
	DaysUntilDue                 *int               `json:"days_until_due"`
	PriorityColor                string             `json:"priority_color"`
	SubtasksCount                int                `json:"subtasks_count"`
	CompletedSubtasksCount       int                `json:"completed_subtasks_count"`
	SubtasksCompletionPercentage float64            `json:"subtasks_completion_percentage"`
	CanBeCompleted               bool               `json:"can_be_completed"`
}

func NewTaskDetail(task *Task, subtasks []Subtask, history *TaskHistory, now time.Time) *TaskDetail {
	completed, total := CountCompleted(subtasks)

	detail := &TaskDetail{
		Task:                         *task,
		Subtasks:                     make([]SubtaskDetail, 0, len(subtasks)),
		IsOverdue:                    task.IsOverdue(now),
		DaysUntilDue:                 task.DaysUntilDue(now),
		PriorityColor:                task.Priority.Color(),
		SubtasksCount:                total,
		CompletedSubtasksCount:       completed,
		SubtasksCompletionPercentage: CompletionPercentage(subtasks),
		CanBeCompleted:               total == 0 || completed == total,
	}
	for i := range subtasks {
		detail.Subtasks = append(detail.Subtasks, NewSubtaskDetail(&subtasks[i], now))
	}
	if history != nil {
		detail.History = NewTaskHistoryDetail(history)
	}
	return detail
}

// TaskSummary - сокращённое представление для списков
type TaskSummary struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	DueDate       *time.Time `json:"due_date"`
	Completed     bool       `json:"completed"`
	Priority      Priority   `json:"priority"`
	ListID        *int       `json:"task_list"`
	CategoryID    *int       `json:"category"`
	TagsCount     int        `json:"tags_count"`
	IsOverdue     bool       `json:"is_overdue"`
	PriorityColor string     `json:"priority_color"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewTaskSummary(task *Task, now time.Time) TaskSummary {
	return TaskSummary{
		ID:            task.ID,
		Title:         task.Title,
		DueDate:       task.DueDate,
		Completed:     task.Completed,
		Priority:      task.Priority,
		ListID:        task.ListID,
		CategoryID:    task.CategoryID,
		TagsCount:     len(task.TagIDs),
		IsOverdue:     task.IsOverdue(now),
		PriorityColor: task.Priority.Color(),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// валидация
type CreateTaskRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	DueDate           *time.Time `json:"due_date"`
	Completed         bool       `json:"completed"`
	Priority          Priority   `json:"priority"`
	Reminder          *time.Time `json:"reminder"`
	EstimatedDuration *Duration  `json:"estimated_duration"`
	ListID            *int       `json:"task_list"`
	CategoryID        *int       `json:"category"`
	TagIDs            []int      `json:"tags"`
}

// UpdateTaskRequest - частичное обновление, nil означает "не менять".
// Nullable-поля сбрасываются явным null. ListID/CategoryID отвязывают задачу
// и по null, и по 0.
type UpdateTaskRequest struct {
	Title             *string             `json:"title"`
	Description       *string             `json:"description"`
	DueDate           Nullable[time.Time] `json:"due_date"`
	Completed         *bool               `json:"completed"`
	Priority          *Priority           `json:"priority"`
	Reminder          Nullable[time.Time] `json:"reminder"`
	EstimatedDuration Nullable[Duration]  `json:"estimated_duration"`
	ListID            Nullable[int]       `json:"task_list"`
	CategoryID        Nullable[int]       `json:"category"`
	TagIDs            *[]int              `json:"tags"`
}

func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && !r.DueDate.Set && r.Completed == nil &&
		r.Priority == nil && !r.Reminder.Set && !r.EstimatedDuration.Set &&
		!r.ListID.Set && !r.CategoryID.Set && r.TagIDs == nil
}

type TaskFilter struct {
	Completed  *bool
	Priority   Priority
	CategoryID *int
	ListID     *int
	TagID      *int
	Search     string
	DueFrom    *time.Time // due_date >= DueFrom
	DueBefore  *time.Time // due_date < DueBefore
	Ordering   string
}
