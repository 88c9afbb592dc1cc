package dto

type SeedWorkspaceDTO struct {
	TeamId             string
	TeamName           string
	ProjectId          string
	ProjectName        string
	ProjectDescription string
	OwnerId            string
}
