package entity

import "time"

const MaxListNameLength = 100

// TaskList - пользовательская группа задач. CustomProfile и AutoSuggestion
// только хранятся, поведения за ними нет.
type TaskList struct {
	ID             int       `json:"id"`
	OwnerID        int       `json:"owner_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CustomProfile  bool      `json:"custom_profile"`
	AutoSuggestion bool      `json:"auto_suggestion"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (l *TaskList) Validate() error {
	return validateName(l.Name, MaxListNameLength)
}

type TaskListWithStats struct {
	TaskList
	TaskStats
}

// TaskListTasks - список, его задачи и счётчики по ним
type TaskListTasks struct {
	TaskListWithStats
	Tasks []TaskSummary `json:"tasks"`
}

type CreateTaskListRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	CustomProfile  bool   `json:"custom_profile"`
	AutoSuggestion bool   `json:"auto_suggestion"`
}

func (r *CreateTaskListRequest) ToTaskList(ownerID int) *TaskList {
	return &TaskList{
		OwnerID:        ownerID,
		Name:           r.Name,
		Description:    r.Description,
		CustomProfile:  r.CustomProfile,
		AutoSuggestion: r.AutoSuggestion,
	}
}

type UpdateTaskListRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	CustomProfile  *bool   `json:"custom_profile"`
	AutoSuggestion *bool   `json:"auto_suggestion"`
}
