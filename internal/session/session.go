package session

const (
	// TokenKey is the storage slot holding the bearer token
	TokenKey = "token"
	// RoleKey is the storage slot holding the role label
	RoleKey = "role"
)

// Well-known role labels returned by the admin API. They are not validated.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// TokenSource is the read side used by the request pipeline and the session gate.
// An empty stored token is reported as absent.
type TokenSource interface {
	Token() (string, bool)
}

// Repository defines the credential storage operations.
// The token and role slots are independent: one can be set without the other.
type Repository interface {
	TokenSource
	SetToken(token string) error
	RemoveToken() error
	SetRole(role string) error
	Role() (string, bool)
}

// Credential is a snapshot of both slots
type Credential struct {
	Token string
	Role  string
}

// Load reads both slots from a repository
func Load(repo Repository) Credential {
	token, _ := repo.Token()
	role, _ := repo.Role()
	return Credential{Token: token, Role: role}
}

// Authenticated reports whether the snapshot holds a token
func (c Credential) Authenticated() bool {
	return c.Token != ""
}
