package testspec

import "strings"

// Role identifies a fixed test account.
type Role string

const (
	RoleStandardUser   Role = "standardUser"
	RolePrivilegedUser Role = "privilegedUser"
)

// Credential is one email/password pair injected into rendered tests as
// variables. The set is static and read-only after startup.
type Credential struct {
	Email    string
	Password string
}

// defaultCredentials maps roles to the fixed test accounts.
var defaultCredentials = map[Role]Credential{
	RoleStandardUser:   {Email: "creator@example.com", Password: "creator-pass-123"},
	RolePrivilegedUser: {Email: "admin@example.com", Password: "admin-pass-123"},
}

// CredentialFor returns the credential pair for a role. Unknown roles get the
// standard user.
func CredentialFor(role Role) Credential {
	if c, ok := defaultCredentials[role]; ok {
		return c
	}
	return defaultCredentials[RoleStandardUser]
}

// CredentialForScenario selects a credential pair by scenario name. Names
// containing "admin" get the privileged account; everything else, including
// names containing "creator", gets the standard account.
func CredentialForScenario(name string) Credential {
	lowered := strings.ToLower(name)
	if strings.Contains(lowered, "admin") {
		return CredentialFor(RolePrivilegedUser)
	}
	return CredentialFor(RoleStandardUser)
}
