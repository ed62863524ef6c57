package domain

// ActivityView is one row of the "all activities" view, fully computed by the
// catalog sync so the presentation layer only draws it.
type ActivityView struct {
	Name        ActivityName
	Description string
	Schedule    string

	ParticipantCount int
	MaxParticipants  int
	// SpotsLeft may be negative when the server over-enrolls an activity.
	SpotsLeft int

	// SignedUp binds the row's action affordance: true renders "unregister",
	// false renders "sign up". It is always derived from the last successful
	// sync, never from an in-flight request.
	SignedUp bool
}

// MyEntry is one row of the "my activities" view. When the subject has no
// registrations the view carries exactly one placeholder entry instead of an
// empty list.
type MyEntry struct {
	Name     ActivityName
	Schedule string

	Placeholder bool
	Note        string
}
