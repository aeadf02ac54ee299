package domain

type Home struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	CreatedOn string `json:"created_on"`
}
