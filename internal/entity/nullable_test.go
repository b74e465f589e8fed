package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableDecoding(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue bool
	}{
		{"absent", `{}`, false, false},
		{"null", `{"due_date": null}`, true, false},
		{"value", `{"due_date": "2024-03-20T10:00:00Z"}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				DueDate Nullable[time.Time] `json:"due_date"`
			}
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if req.DueDate.Set != tt.wantSet || (req.DueDate.Value != nil) != tt.wantValue {
				t.Errorf("Expected set=%v value=%v, got %+v", tt.wantSet, tt.wantValue, req.DueDate)
			}
		})
	}
}

func TestNullableApply(t *testing.T) {
	due := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	current := &due

	Nullable[time.Time]{}.Apply(&current)
	if current == nil {
		t.Fatal("Expected absent field to keep the value")
	}

	Null[time.Time]().Apply(&current)
	if current != nil {
		t.Fatalf("Expected null to clear the value, got %v", current)
	}

	later := due.Add(24 * time.Hour)
	NewNullable(later).Apply(&current)
	if current == nil || !current.Equal(later) {
		t.Errorf("Expected %v, got %v", later, current)
	}

	var estimate Nullable[Duration]
	if err := json.Unmarshal([]byte(`"1h30m"`), &estimate); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if estimate.Value == nil || estimate.Value.Std() != 90*time.Minute {
		t.Errorf("Expected 1h30m, got %+v", estimate)
	}
}
