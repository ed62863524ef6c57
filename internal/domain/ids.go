package domain

// SubjectID is the identity decoded from the bearer token's "sub" claim.
// The token signature is never verified client-side, so this is a display
// identity only: it selects what the UI highlights as "mine" and must not
// gate authorization decisions (those remain server-side).
type SubjectID string

// ActivityName is the unique key of an activity in the catalog.
type ActivityName string
