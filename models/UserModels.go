package models

import "time"

// User is a platform admin account.
type User struct {
	ID         int       `json:"id" example:"1"`
	Email      string    `json:"email" example:"admin@example.com"`
	Password   string    `json:"password,omitempty" example:""`
	FullName   string    `json:"full_name" example:"Tran Thi B"`
	ProfilePic string    `json:"profile_picture" example:""`
	IsAdmin    bool      `json:"is_admin" example:"true"`
	Suspended  bool      `json:"suspended" example:"false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	LastAccess time.Time `json:"last_access,omitempty"`
}

// Session is a server-side login session bound to one device.
type Session struct {
	UserID                int       `json:"user_id" example:"1"`
	SessionID             string    `json:"session_id"`
	HostName              string    `json:"host_name"`
	IPAddress             string    `json:"ip_address"`
	Timestamp             time.Time `json:"timestp"`
	ExpiresAt             time.Time `json:"expires_at"`
	RefreshToken          string    `json:"-"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}

// ActivityLog records one admin action for the audit trail.
type ActivityLog struct {
	ID           int       `json:"id"`
	EventContext string    `json:"event_context" example:"Config"`
	EventName    string    `json:"event_name" example:"Update"`
	Description  string    `json:"description"`
	UserName     string    `json:"user_name"`
	HostName     string    `json:"host_name"`
	IPAddress    string    `json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:""`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	SessionID    string `json:"session_id"`
	User         User   `json:"user"`
}
