package response

type UserPayload struct {
	Id    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

type OAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
