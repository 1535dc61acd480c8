package domain

// AccessToken is a short-lived credential obtained from a refresh token.
type AccessToken struct {
	Type  string
	Value string
}

// String returns the credential as sent in an Authorization header.
func (t AccessToken) String() string {
	if t.Type == "" {
		return t.Value
	}
	return t.Type + " " + t.Value
}
