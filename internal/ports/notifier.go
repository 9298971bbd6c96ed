package ports

// Kind tags a user-facing notification.
type Kind int

const (
	KindInfo Kind = iota
	// Input rejected before any request was made.
	KindValidation
	// Session missing or rejected; the user is sent back to login.
	KindAuth
	// The backend answered with a non-empty Error field.
	KindDomain
	// Network, timeout, or decode failure.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindDomain:
		return "domain"
	case KindTransport:
		return "transport"
	default:
		return "info"
	}
}

// Notice is the single tagged value every failure path is reported as.
type Notice struct {
	Kind    Kind
	Message string
	Err     error
}

// Contract for surfacing notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
