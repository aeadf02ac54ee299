package domain

type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	HomeID     int32             `json:"home_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
