package entity

import "time"

// TaskHistory - запись о завершении задачи, не больше одной на задачу
type TaskHistory struct {
	ID                int       `json:"id"`
	TaskID            int       `json:"task_id"`
	CompletionDate    time.Time `json:"completion_date"`
	EstimatedDuration *Duration `json:"estimated_duration"`
	ActualDuration    *Duration `json:"actual_duration"`
	Notes             string    `json:"notes"`
}

// NewTaskHistory снимает оценку длительности с задачи в момент завершения
func NewTaskHistory(task *Task, notes string, now time.Time) *TaskHistory {
	h := &TaskHistory{
		TaskID:         task.ID,
		CompletionDate: now,
		Notes:          notes,
	}
	if task.EstimatedDuration != nil {
		h.EstimatedDuration = NewDuration(task.EstimatedDuration.Std())
	}
	return h
}

// DurationDifference = actual - estimated, nil если чего-то нет
func (h *TaskHistory) DurationDifference() *Duration {
	if h.EstimatedDuration == nil || h.ActualDuration == nil {
		return nil
	}
	return NewDuration(h.ActualDuration.Std() - h.EstimatedDuration.Std())
}

func (h *TaskHistory) WasCompletedOnTime() *bool {
	if h.EstimatedDuration == nil || h.ActualDuration == nil {
		return nil
	}
	onTime := *h.ActualDuration <= *h.EstimatedDuration
	return &onTime
}

type TaskHistoryDetail struct {
	TaskHistory
	DurationDifference *Duration `json:"duration_difference"`
	WasOnTime          *bool     `json:"was_on_time"`
}

func NewTaskHistoryDetail(h *TaskHistory) *TaskHistoryDetail {
	return &TaskHistoryDetail{
		TaskHistory:        *h,
		DurationDifference: h.DurationDifference(),
		WasOnTime:          h.WasCompletedOnTime(),
	}
}

type UpdateTaskHistoryRequest struct {
	ActualDuration *Duration `json:"actual_duration"`
	Notes          *string   `json:"notes"`
}
