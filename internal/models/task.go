package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// ErrInvalidTaskStatus is returned when a status string is not one of the
// known TaskStatus values.
var ErrInvalidTaskStatus = errors.New("invalid task status")

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

var knownTaskStatuses = map[TaskStatus]struct{}{
	TaskStatusOpen:       {},
	TaskStatusInProgress: {},
	TaskStatusCompleted:  {},
}

// ParseTaskStatus converts s to a TaskStatus. Matching is exact and
// case-sensitive.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if _, ok := knownTaskStatuses[status]; !ok {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

func (s TaskStatus) String() string {
	return string(s)
}

// Task belongs to exactly one owner for its whole lifetime.
type Task struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:char(36);index:idx_tasks_owner_id;not null" json:"owner_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);index:idx_tasks_status;not null;default:'OPEN'" json:"status"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates an OPEN task owned by ownerID. A nil dueDate means the
// task has no due date.
func NewTask(ownerID uuid.UUID, name, description string, dueDate *time.Time) *Task {
	return &Task{
		ID:          utils.NewID(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Status:      TaskStatusOpen,
		DueDate:     dueDate,
	}
}

// SetStatus stores status as is. No transition rules apply.
func (t *Task) SetStatus(status TaskStatus) {
	t.Status = status
}

// HasDueDate reports whether a due date is set.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil
}

// OwnedBy reports whether userID owns the task.
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.OwnerID == userID
}

func (t *Task) String() string {
	return t.ID.String() + " " + t.Name
}
