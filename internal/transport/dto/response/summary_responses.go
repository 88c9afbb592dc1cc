package response

type SummaryResponse struct {
	Summary string `json:"summary"`
}
