package dto

import "time"

// SessionRequest asks for a session token bound to a ledger address. In a
// production deployment the wallet layer proves control of the address before
// this endpoint is reached; the ledger only binds the session.
type SessionRequest struct {
	Address string `json:"address" binding:"required,ethaddr"`
}

// SessionResponse carries the signed bearer token.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
