package dto

import "github.com/dkuznetsov/issueboard/internal/domain"

type CreateIssueDTO struct {
	Id          string
	Title       string
	Description *string
	Status      domain.Status
	Priority    domain.Priority
	ProjectId   string
	CreatorId   string
	AssigneeId  *string
}

type UpdateIssueDTO struct {
	IssueId     string
	OwnerId     string
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	AssigneeId  *string
}

type UpdateStatusDTO struct {
	IssueId string
	OwnerId string
	Status  domain.Status
}

type SoftDeleteIssueDTO struct {
	IssueId string
	OwnerId string
}
