package model

// TokenManager issues and validates admin API tokens.
type TokenManager interface {
	GenerateAdminToken(subject string) (string, error)
	ParseAdminToken(token string) (subject string, err error)
}
