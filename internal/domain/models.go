package domain

import "time"

// Status хранится как строка. Закрытое множество соответствует колонкам
// доски, но неизвестные значения допустимы и сохраняются как есть.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Known сообщает, входит ли статус в закрытое множество колонок доски.
func (s Status) Known() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

type User struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"image,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

type Team struct {
	Id        string
	Name      string
	OwnerId   string
	CreatedAt time.Time
}

type TeamMember struct {
	TeamId   string
	UserId   string
	Role     string
	JoinedAt time.Time
}

type Project struct {
	Id          string
	Name        string
	Description *string
	TeamId      string
	OwnerId     string
	CreatedAt   time.Time
}

type Issue struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	ProjectId   string     `json:"project_id"`
	CreatorId   string     `json:"creator_id"`
	AssigneeId  *string    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"-"`
}
