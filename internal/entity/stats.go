package entity

import (
	"math"
	"time"
)

// Completable - всё, у чего можно посчитать процент выполнения
type Completable interface {
	IsCompleted() bool
}

func CountCompleted[T Completable](items []T) (completed, total int) {
	for _, item := range items {
		if item.IsCompleted() {
			completed++
		}
	}
	return completed, len(items)
}

func CompletionPercentage[T Completable](items []T) float64 {
	return Percentage(CountCompleted(items))
}

// Percentage округляет до двух знаков, для пустого набора - 0
func Percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}

// TaskStats - производные счётчики по набору задач (список, категория, тег).
// Не хранятся, считаются при каждом чтении.
type TaskStats struct {
	Total                int     `json:"tasks_count"`
	Completed            int     `json:"completed_tasks_count"`
	Pending              int     `json:"pending_tasks_count"`
	Overdue              int     `json:"overdue_tasks_count"`
	HighPriority         int     `json:"high_priority_tasks_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

func NewTaskStats(total, completed, overdue, highPriority int) TaskStats {
	return TaskStats{
		Total:                total,
		Completed:            completed,
		Pending:              total - completed,
		Overdue:              overdue,
		HighPriority:         highPriority,
		CompletionPercentage: Percentage(completed, total),
	}
}

// CountTasks - счётчики по уже загруженным задачам
func CountTasks(tasks []Task, now time.Time) TaskStats {
	completed, total := CountCompleted(tasks)
	overdue, high := 0, 0
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			overdue++
		}
		if tasks[i].Priority == PriorityHigh {
			high++
		}
	}
	return NewTaskStats(total, completed, overdue, high)
}
