package entity

import "time"

// Known audit action tags. The store accepts any string; these constants
// exist for call-site typo safety only and are not a closed set.
const (
	ActionLogin          = "Login"
	ActionCreateUser     = "CreateUser"
	ActionEditUser       = "EditUser"
	ActionDeleteUser     = "DeleteUser"
	ActionUpdateProfile  = "UpdateProfile"
	ActionChangePassword = "ChangePassword"
	ActionCreateRole     = "CreateRole"
	ActionEditRole       = "EditRole"
	ActionDeleteRole     = "DeleteRole"
	ActionCreateCarrier  = "CreateCarrier"
	ActionEditCarrier    = "EditCarrier"
	ActionDeleteCarrier  = "DeleteCarrier"
	ActionCreateYard     = "CreateYard"
	ActionEditYard       = "EditYard"
	ActionDeleteYard     = "DeleteYard"
)

// Placeholder display values for entries whose actor no longer resolves.
const (
	UnknownActorName  = "Unknown User"
	UnknownActorEmail = "N/A"
)

// AuditEntry is one immutable record of an administrative action. Entries
// are write-once: nothing in the codebase updates or deletes them.
type AuditEntry struct {
	ID          int64     `json:"id"`
	ActorID     string    `json:"actor_id"`
	CreatedOn   time.Time `json:"created_on"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	Payload     string    `json:"payload,omitempty"`
}

// AuditEntryView is an AuditEntry joined with the actor's display fields.
// The actor referenced by an entry may have been deleted since the entry was
// written; such entries carry the placeholder values instead.
type AuditEntryView struct {
	AuditEntry
	ActorName  string `json:"actor_name"`
	ActorEmail string `json:"actor_email"`
}
