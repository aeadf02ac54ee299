package domain

// Card is a credit card registered in a home. Expenses assigned to a card are
// charged to its owner in the per-user monthly report regardless of who
// entered them.
type Card struct {
	ID          int32  `json:"id"`
	HomeID      int32  `json:"home_id"`
	OwnerUserID int32  `json:"owner_user_id"`
	Name        string `json:"name"`
	Last4       string `json:"last4,omitempty"`
	CreatedOn   string `json:"created_on"`
}
