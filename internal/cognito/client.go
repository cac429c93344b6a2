package cognito

import "context"

// Directory looks up users in the identity platform. Sign-up and login
// happen there; this service only needs to learn who a token belongs to.
type Directory interface {
	LookupUser(ctx context.Context, sub string) (UserProfile, error)
}

// UserProfile is the subset of user attributes the service stores.
type UserProfile struct {
	Sub      string
	Username string
	Email    string
	Enabled  bool
}
