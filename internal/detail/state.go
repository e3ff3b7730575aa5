package detail

// State is the lifecycle state of a Controller.
type State uint8

const (
	// StateIdle is the state before Mount.
	StateIdle State = iota
	// StateLoading is entered by Mount while the record is fetched.
	StateLoading
	// StateViewing shows the last known good record.
	StateViewing
	// StateEditing holds a draft that differs from the record only by user edits.
	StateEditing
	// StateSubmitting waits for the store to apply the draft.
	StateSubmitting
	// StateNotFound is terminal: the requested id does not exist.
	StateNotFound
	// StateFailed is terminal: the record could not be loaded.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateNotFound:
		return "not_found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateNotFound || s == StateFailed
}

// Ready reports whether a record is loaded.
func (s State) Ready() bool {
	return s == StateViewing || s == StateEditing || s == StateSubmitting
}

// Tone classifies a Message.
type Tone uint8

const (
	ToneNone Tone = iota
	ToneSuccess
	ToneError
)

// Message is the banner shown above the detail view.
type Message struct {
	Tone Tone
	Text string
}

// Empty reports whether there is nothing to show.
func (m Message) Empty() bool { return m.Text == "" }

func success(text string) Message { return Message{Tone: ToneSuccess, Text: text} }

func failure(text string) Message { return Message{Tone: ToneError, Text: text} }
