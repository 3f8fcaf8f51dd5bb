package models

import "time"

// AdminUser is a sandbox account as returned by the user management API.
type AdminUser struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	Role      string    `json:"role"`
}

// AdminUserInput is the create/update payload.
type AdminUserInput struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role,omitempty"`
}

// AuditEntry records one confirmed admin action.
type AuditEntry struct {
	ID         string    `bson:"id" json:"id"`
	Action     string    `bson:"action" json:"action"`
	TargetID   int       `bson:"target_id,omitempty" json:"targetId,omitempty"`
	ActorID    int       `bson:"actor_id" json:"actorId"`
	ActorEmail string    `bson:"actor_email" json:"actorEmail"`
	Success    bool      `bson:"success" json:"success"`
	Error      string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
