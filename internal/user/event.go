package user

// Kind names an event for logs and the debug overlay.
type Kind string

const (
	KindInit Kind = "user/INIT"
	KindLoad Kind = "user/LOAD"
)

// Event is a request to transition the State. The set of events is closed:
// only types in this package implement it, and Reduce switches over all of them.
type Event interface {
	Kind() Kind
	sealed()
}

// Init is the no-op event a store is primed with.
type Init struct{}

// Loaded carries a freshly fetched user list. Applying it replaces whatever
// list the state held before.
type Loaded struct {
	Users []Record
}

func (Init) Kind() Kind   { return KindInit }
func (Loaded) Kind() Kind { return KindLoad }

func (Init) sealed()   {}
func (Loaded) sealed() {}
