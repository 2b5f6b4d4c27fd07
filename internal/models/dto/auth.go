package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Mail     string `json:"mail"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Auth  bool   `json:"auth"`
	Token string `json:"token"`
}
