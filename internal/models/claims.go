package models

// Claims carries the caller identity extracted from a token issued by the
// surrounding application. This service never issues tokens itself.
type Claims struct {
	UserID string `json:"user_id"`
	Exp    int64  `json:"exp"`
}
