package request

type CreateIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

type UpdateIssueRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeId  *string `json:"assignee_id"`
}

type MoveIssueRequest struct {
	IssueId string `json:"issue_id"`
	OverId  string `json:"over_id"`
}
