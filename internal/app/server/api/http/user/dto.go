package user

import "liquidtrack/internal/domain/user"

type credentialsInput struct {
	Body user.Credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Login  string `json:"login"`
	Status string `json:"status"`
}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	ID    int    `json:"user_id"`
	Login string `json:"login"`
}
