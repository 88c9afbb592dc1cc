package response

type UpdateProfileResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

type CheckPasswordResponse struct {
	HasPassword bool `json:"hasPassword"`
}

type ChangePasswordResponse struct {
	Message string `json:"message"`
}
