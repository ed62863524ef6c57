package domain

// Activity is one catalog entry as reported by the service.
type Activity struct {
	Name        ActivityName
	Description string
	Schedule    string

	MaxParticipants int
	// Participants is kept in server-returned order for display; membership
	// tests ignore order.
	Participants []SubjectID
}

// SpotsLeft is capacity minus enrollment. The capacity invariant is enforced
// server-side only; when it is violated the result goes negative and is
// displayed as-is rather than clamped or hidden.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// HasParticipant reports whether subject appears in the participant list.
func (a Activity) HasParticipant(subject SubjectID) bool {
	for _, p := range a.Participants {
		if p == subject {
			return true
		}
	}
	return false
}

// Catalog is the full activity roster from the last successful fetch. It is
// rebuilt from scratch on every sync (no incremental merge, no stale entries)
// and preserves server iteration order.
type Catalog []Activity
