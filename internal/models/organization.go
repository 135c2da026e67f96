package models

// Organization is the top-level tenant scope. Nearly every backend path is
// nested under an organization id.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Invitation is a pending membership invitation to an organization.
type Invitation struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedOn string `json:"createdOn,omitempty"`
}

// InvitationInput is the payload for inviting a member.
type InvitationInput struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
