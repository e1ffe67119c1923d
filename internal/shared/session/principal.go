package session

import "context"

// Principal is the authenticated account as seen by handlers and templates.
type Principal struct {
	AccountID int64
	Email     string
	FirstName string
	LastName  string
	IsStaff   bool
}

func (p *Principal) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// PrincipalLoader resolves an account id into a Principal. It returns an
// error for unknown or deactivated accounts.
type PrincipalLoader func(ctx context.Context, accountID int64) (*Principal, error)
