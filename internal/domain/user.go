package domain

type User struct {
	Name     string `json:"Name"`
	Username string `json:"Username"`
}

// An authenticated session. Token is the opaque value the backend issued at
// login and is sent verbatim in the Authorization header.
type Session struct {
	Token string
}

func (s Session) Valid() bool { return s.Token != "" }
