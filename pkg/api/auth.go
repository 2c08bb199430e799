package api

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	OperatorID string `json:"operator_id"`
	ExpiresAt  int64  `json:"expires_at"` // unix seconds
}
