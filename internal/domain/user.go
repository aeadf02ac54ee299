package domain

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

type HomeRole string

const (
	HomeRoleOwner  HomeRole = "OWNER"
	HomeRoleMember HomeRole = "MEMBER"
)

// HomeMember is a user's membership row in a home. LinkedCardID points at the
// card whose expenses count against this member in the monthly report.
type HomeMember struct {
	UserID       int32    `json:"user_id"`
	HomeID       int32    `json:"home_id"`
	Role         HomeRole `json:"role"`
	JoinedOn     string   `json:"joined_on"`
	LinkedCardID *int32   `json:"linked_card_id,omitempty"`
}
