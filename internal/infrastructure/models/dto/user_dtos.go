package dto

type CreateUserDTO struct {
	Id           string
	Email        string
	PasswordHash *string
	Name         string
	AvatarURL    *string
}

type UpdateProfileDTO struct {
	UserId    string
	Name      string
	AvatarURL *string
}

type UpdatePasswordDTO struct {
	UserId       string
	PasswordHash string
}
