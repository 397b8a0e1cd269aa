package model

// SignInRequest represents request for POST /session/sign-in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Provider string `json:"provider,omitempty"`
}

// BindRequest represents request for POST /session/wallet
type BindRequest struct {
	WalletID string `json:"walletId"`
}

// SessionResponse represents the current session state
type SessionResponse struct {
	IdentityID      string   `json:"identityId,omitempty"`
	CurrentWalletID string   `json:"currentWalletId,omitempty"`
	Connected       bool     `json:"connected"`
	AuthType        AuthType `json:"authType"`
}

// AuthTypeRequest represents request for PUT /session/auth-type
type AuthTypeRequest struct {
	AuthType AuthType `json:"authType"`
}
