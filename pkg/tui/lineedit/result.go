// ABOUTME: Result is the outcome of one ReadLine call.
// ABOUTME: Completed carries the line; Cancelled, Terminated and Failed end the call without one.

package lineedit

// Kind tells how a ReadLine call ended.
type Kind int

const (
	Completed  Kind = iota // Enter pressed; Line holds the text
	Cancelled              // Ctrl+C; the line was discarded
	Terminated             // Ctrl+D or end of input
	Failed                 // read or write error; Err is set
)

func (k Kind) String() string {
	switch k {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Terminated:
		return "terminated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is returned by ReadLine. Line is an independent copy of the
// buffer and stays valid after the next call.
type Result struct {
	Kind      Kind
	Line      string
	Discarded int // bytes dropped by a Cancelled call
	Err       error
}
