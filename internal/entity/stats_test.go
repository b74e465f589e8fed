package entity

import (
	"testing"
	"time"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		completed, total int
		want             float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		if got := Percentage(tt.completed, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestCompletionPercentageOverCollections(t *testing.T) {
	if got := CompletionPercentage([]Task{}); got != 0 {
		t.Errorf("Expected 0 for empty collection, got %v", got)
	}

	subtasks := []Subtask{{Completed: true}, {Completed: true}}
	if got := CompletionPercentage(subtasks); got != 100 {
		t.Errorf("Expected 100, got %v", got)
	}

	tasks := []Task{{Completed: true}, {}, {}, {}}
	if got := CompletionPercentage(tasks); got != 25 {
		t.Errorf("Expected 25, got %v", got)
	}
}

func TestCountTasks(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tasks := []Task{
		{Completed: true, Priority: PriorityHigh, DueDate: &past},
		{Priority: PriorityHigh, DueDate: &past},
		{Priority: PriorityLow, DueDate: &future},
		{Priority: PriorityMedium},
		{Priority: PriorityLow, DueDate: &now},
	}

	stats := CountTasks(tasks, now)
	want := TaskStats{Total: 5, Completed: 1, Pending: 4, Overdue: 1, HighPriority: 2, CompletionPercentage: 20}
	if stats != want {
		t.Errorf("CountTasks() = %+v, want %+v", stats, want)
	}

	overdue := 0
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			overdue++
		}
	}
	if stats.Overdue != overdue {
		t.Errorf("Expected overdue count %d to match IsOverdue, got %d", overdue, stats.Overdue)
	}
}
