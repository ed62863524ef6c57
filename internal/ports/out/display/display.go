package display

// Kind tags a notification for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Sink shows and hides the single transient status message. There is no
// queue: Show replaces whatever is currently visible.
type Sink interface {
	Show(text string, kind Kind)
	Hide()
}
