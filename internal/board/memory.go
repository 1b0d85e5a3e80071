package board

// MemorySurface is an in-memory Surface. It backs tests and headless runs.
type MemorySurface struct {
	next     Handle
	root     Handle
	kinds    map[Handle]ElementKind
	images   map[Handle]string
	states   map[Handle]VisualState
	children map[Handle][]Handle
	handlers map[Handle]func()
	moves    int
}

// NewMemorySurface creates an empty in-memory surface
func NewMemorySurface() *MemorySurface {
	s := &MemorySurface{
		kinds:    make(map[Handle]ElementKind),
		images:   make(map[Handle]string),
		states:   make(map[Handle]VisualState),
		children: make(map[Handle][]Handle),
		handlers: make(map[Handle]func()),
	}
	s.root = s.CreateElement("board", "")
	return s
}

func (s *MemorySurface) Root() Handle {
	return s.root
}

func (s *MemorySurface) CreateElement(kind ElementKind, image string) Handle {
	s.next++
	h := s.next
	s.kinds[h] = kind
	s.images[h] = image
	return h
}

func (s *MemorySurface) SetVisualState(h Handle, state VisualState) {
	s.states[h] = state
}

func (s *MemorySurface) AppendChild(parent, child Handle) {
	s.children[parent] = append(s.children[parent], child)
}

func (s *MemorySurface) Clear(container Handle) {
	for _, child := range s.children[container] {
		s.detach(child)
	}
	delete(s.children, container)
}

func (s *MemorySurface) detach(h Handle) {
	for _, child := range s.children[h] {
		s.detach(child)
	}
	delete(s.children, h)
	delete(s.handlers, h)
	delete(s.kinds, h)
	delete(s.images, h)
	delete(s.states, h)
}

func (s *MemorySurface) RegisterActivationHandler(h Handle, fn func()) {
	s.handlers[h] = fn
}

func (s *MemorySurface) UnregisterActivationHandler(h Handle) {
	delete(s.handlers, h)
}

func (s *MemorySurface) SetMoves(moves int) {
	s.moves = moves
}

// Activate delivers an activation event to the i-th card on the board. It
// reports whether the card had a handler.
func (s *MemorySurface) Activate(i int) bool {
	cards := s.children[s.root]
	if i < 0 || i >= len(cards) {
		return false
	}
	fn, ok := s.handlers[cards[i]]
	if !ok {
		return false
	}
	fn()
	return true
}

// Cards returns the card handles attached to the board, in order
func (s *MemorySurface) Cards() []Handle {
	return append([]Handle(nil), s.children[s.root]...)
}

// State returns the visual state of an element
func (s *MemorySurface) State(h Handle) VisualState {
	return s.states[h]
}

// Image returns the face identifier of the element's child of the given kind
func (s *MemorySurface) Image(h Handle, kind ElementKind) string {
	for _, child := range s.children[h] {
		if s.kinds[child] == kind {
			return s.images[child]
		}
	}
	return ""
}

// HasHandler reports whether an activation handler is registered on h
func (s *MemorySurface) HasHandler(h Handle) bool {
	_, ok := s.handlers[h]
	return ok
}

// Moves returns the last displayed move count
func (s *MemorySurface) Moves() int {
	return s.moves
}

// Elements returns the number of live elements, the root included
func (s *MemorySurface) Elements() int {
	return len(s.kinds)
}
