package board

// Handle identifies an element created on a Surface
type Handle int

// ElementKind is the kind of element a Surface can create
type ElementKind string

const (
	KindCard      ElementKind = "memory-card"
	KindFrontFace ElementKind = "front-face"
	KindBackFace  ElementKind = "back-face"
)

// VisualState is the visual tag carried by a card element
type VisualState int

const (
	FaceDown VisualState = iota
	FaceUp
	Matched
)

func (s VisualState) String() string {
	switch s {
	case FaceDown:
		return "face-down"
	case FaceUp:
		return "face-up"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Surface is the display target cards are rendered on.
//
// Implementations are driven from a single goroutine and need not be safe for
// concurrent use. Activation handlers are invoked by the surface owner, never
// concurrently with other Surface calls.
type Surface interface {
	// Root returns the container cards are appended to.
	Root() Handle
	// CreateElement creates a detached element. Image is the face identifier
	// for front and back faces and empty for card containers.
	CreateElement(kind ElementKind, image string) Handle
	SetVisualState(h Handle, state VisualState)
	AppendChild(parent, child Handle)
	// Clear detaches every child of the container and drops their handlers.
	Clear(container Handle)
	RegisterActivationHandler(h Handle, fn func())
	UnregisterActivationHandler(h Handle)
	// SetMoves updates the move counter shown next to the board.
	SetMoves(moves int)
}
