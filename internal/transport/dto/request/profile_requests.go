package request

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
