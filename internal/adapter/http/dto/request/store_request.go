package request

import "encoding/json"

// UIDRequest is the body of the store, history and refresh endpoints.
type UIDRequest struct {
	UID json.Number `json:"uid" binding:"required"`
}

type TokenRequest struct {
	AppID string `json:"appId"`
}

// LoginQuery is bound from the query string of GET /login.
type LoginQuery struct {
	LoginType int    `form:"login_type" binding:"required"`
	LoginID   string `form:"login_id" binding:"required"`
	LoginCode string `form:"login_code"`
	ShareID   string `form:"share_id"`
}
