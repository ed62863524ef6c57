package activityapi

import (
	"context"

	"github.com/Mergington-High/activity-signup-client/internal/domain"
)

// Client is the outbound port to the activity service. Implementations do no
// retrying: every failure is terminal for that attempt and requires a new
// user action.
type Client interface {
	// Login exchanges credentials for a bearer token (POST /token).
	// A non-2xx response is an authentication failure.
	Login(ctx context.Context, username, password string) (string, error)

	// CreateUser registers a new account (POST /users/).
	CreateUser(ctx context.Context, email, password string) error

	// ListActivities fetches the full catalog in server-returned order
	// (GET /activities, bearer-authenticated).
	ListActivities(ctx context.Context, token string) (domain.Catalog, error)

	// Signup registers email for the named activity. The returned message is
	// the service-provided success text, empty when the service sent none.
	Signup(ctx context.Context, token string, name domain.ActivityName, email string) (string, error)

	// Unregister removes email from the named activity. Message semantics
	// match Signup.
	Unregister(ctx context.Context, token string, name domain.ActivityName, email string) (string, error)
}
