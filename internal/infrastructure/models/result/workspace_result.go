package result

import "github.com/dkuznetsov/issueboard/internal/domain"

type SeedWorkspaceResult struct {
	Team    *domain.Team
	Project *domain.Project
}
