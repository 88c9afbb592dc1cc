package response

type IssueResponse struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	ProjectId   string  `json:"project_id"`
	CreatedAt   string  `json:"created_at"`
}

type IssueListResponse struct {
	Issues []*IssueResponse `json:"issues"`
}

type BoardColumnResponse struct {
	Status string           `json:"status"`
	Issues []*IssueResponse `json:"issues"`
}

type BoardResponse struct {
	Columns []*BoardColumnResponse `json:"columns"`
}

type MoveIssueResponse struct {
	Moved  bool   `json:"moved"`
	Status string `json:"status"`
}

type DeleteIssueResponse struct {
	Message string `json:"message"`
}
