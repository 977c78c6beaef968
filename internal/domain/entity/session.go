package entity

// Session is the authenticated caller of a request
type Session struct {
	Username string
	Role     string
	TokenID  string
}
