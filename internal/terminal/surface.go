package terminal

import (
	"io"
	"math"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/arcanaland/concentration/internal/board"
	"github.com/arcanaland/concentration/internal/game"
	"github.com/arcanaland/concentration/internal/imageset"
)

const (
	cardWidth  = 8
	cardHeight = 4
)

type element struct {
	kind     board.ElementKind
	image    string
	state    board.VisualState
	children []board.Handle
	handler  func()
}

// Surface draws the board on an ANSI terminal. It implements board.Surface
// and game.Notifier.
type Surface struct {
	out      io.Writer
	art      *ArtCache
	lang     language.Tag
	title    string
	next     board.Handle
	root     board.Handle
	elements map[board.Handle]*element
	cursor   int
	moves    int
	status   string
}

// Options configures a Surface
type Options struct {
	Title    string
	Language language.Tag
	CacheDir string // Where generated card art is cached, empty for memory only
}

// NewSurface creates a terminal surface writing to out
func NewSurface(out io.Writer, opts Options) *Surface {
	s := &Surface{
		out:      out,
		art:      NewArtCache(opts.CacheDir, cardWidth, cardHeight),
		lang:     opts.Language,
		title:    opts.Title,
		elements: make(map[board.Handle]*element),
	}
	s.root = s.CreateElement("board", "")
	return s
}

func (s *Surface) Root() board.Handle {
	return s.root
}

func (s *Surface) CreateElement(kind board.ElementKind, image string) board.Handle {
	s.next++
	s.elements[s.next] = &element{kind: kind, image: image}
	return s.next
}

func (s *Surface) SetVisualState(h board.Handle, state board.VisualState) {
	if el, ok := s.elements[h]; ok {
		el.state = state
	}
}

func (s *Surface) AppendChild(parent, child board.Handle) {
	if el, ok := s.elements[parent]; ok {
		el.children = append(el.children, child)
	}
}

func (s *Surface) Clear(container board.Handle) {
	el, ok := s.elements[container]
	if !ok {
		return
	}
	for _, child := range el.children {
		s.remove(child)
	}
	el.children = nil
	if container == s.root {
		s.cursor = 0
		s.status = ""
	}
}

func (s *Surface) remove(h board.Handle) {
	el, ok := s.elements[h]
	if !ok {
		return
	}
	for _, child := range el.children {
		s.remove(child)
	}
	delete(s.elements, h)
}

func (s *Surface) RegisterActivationHandler(h board.Handle, fn func()) {
	if el, ok := s.elements[h]; ok {
		el.handler = fn
	}
}

func (s *Surface) UnregisterActivationHandler(h board.Handle) {
	if el, ok := s.elements[h]; ok {
		el.handler = nil
	}
}

func (s *Surface) SetMoves(moves int) {
	s.moves = moves
}

// Notify shows a message under the board until the next restart
func (s *Surface) Notify(message string) {
	s.status = message
}

// Columns returns the number of cards per row
func (s *Surface) Columns() int {
	n := len(s.cards())
	if n == 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Cursor returns the index of the card under the cursor
func (s *Surface) Cursor() int {
	return s.cursor
}

// MoveCursor moves the cursor by dx columns and dy rows, stopping at the edges
func (s *Surface) MoveCursor(dx, dy int) {
	n := len(s.cards())
	if n == 0 {
		return
	}
	cols := s.Columns()
	row, col := s.cursor/cols, s.cursor%cols
	rows := (n + cols - 1) / cols

	col = clamp(col+dx, 0, cols-1)
	row = clamp(row+dy, 0, rows-1)
	idx := row*cols + col
	if idx >= n {
		idx = n - 1
	}
	s.cursor = idx
}

// ActivateCursor delivers an activation to the card under the cursor. It
// reports whether the card accepted it.
func (s *Surface) ActivateCursor() bool {
	cards := s.cards()
	if s.cursor >= len(cards) {
		return false
	}
	el := s.elements[cards[s.cursor]]
	if el.handler == nil {
		return false
	}
	el.handler()
	return true
}

func (s *Surface) cards() []board.Handle {
	if root, ok := s.elements[s.root]; ok {
		return root.children
	}
	return nil
}

// Draw redraws the whole screen
func (s *Surface) Draw() error {
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")

	lines := s.Render()
	b.WriteString(strings.Join(lines, "\r\n"))
	b.WriteString("\r\n")

	_, err := io.WriteString(s.out, b.String())
	return err
}

// Render returns the screen as lines, without cursor positioning
func (s *Surface) Render() []string {
	var lines []string
	if s.title != "" {
		lines = append(lines, colorize.New(colorize.FgCyan, colorize.Bold).Sprint(s.title))
	}
	lines = append(lines, colorize.CyanString(game.MovesLabel(s.lang, s.moves)), "")

	cards := s.cards()
	cols := s.Columns()
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rowLines := make([]string, cardHeight)
		for i := start; i < end; i++ {
			cell := s.renderCard(cards[i], i == s.cursor)
			for y := range rowLines {
				rowLines[y] += cell[y]
			}
		}
		lines = append(lines, rowLines...)
	}

	lines = append(lines, "")
	if s.status != "" {
		lines = append(lines, colorize.New(colorize.FgHiGreen, colorize.Bold).Sprint(s.status))
	}
	lines = append(lines, colorize.HiBlackString("arrows/hjkl move · space flip · r restart · q quit"))
	return lines
}

// renderCard returns cardHeight lines, each cardWidth+2 cells wide including
// the cursor frame.
func (s *Surface) renderCard(h board.Handle, selected bool) []string {
	el := s.elements[h]
	var front, back string
	for _, child := range el.children {
		switch s.elements[child].kind {
		case board.KindFrontFace:
			front = s.elements[child].image
		case board.KindBackFace:
			back = s.elements[child].image
		}
	}

	var face []string
	switch el.state {
	case board.FaceUp:
		face = s.faceLines(front, colorize.New(colorize.FgHiWhite, colorize.Bold))
	case board.Matched:
		face = s.faceLines(front, colorize.New(colorize.FgGreen))
	default:
		face = s.faceLines(back, colorize.New(colorize.FgBlue))
	}

	left, right := " ", " "
	if selected {
		left = colorize.YellowString("▐")
		right = colorize.YellowString("▌")
	}
	out := make([]string, cardHeight)
	for y := range out {
		out[y] = left + face[y] + right
	}
	return out
}

// faceLines renders a face identifier: image art when the file can be
// decoded, otherwise its glyph centered in the card.
func (s *Surface) faceLines(id string, paint *colorize.Color) []string {
	glyph, isGlyph := strings.CutPrefix(id, imageset.GlyphPrefix)
	if !isGlyph {
		if lines, err := s.art.Lines(id); err == nil && len(lines) >= cardHeight {
			return lines[:cardHeight]
		}
		glyph = label(id)
	}

	out := make([]string, cardHeight)
	blank := strings.Repeat(" ", cardWidth)
	for y := range out {
		out[y] = blank
	}
	if isBackFill(glyph) {
		fill := paint.Sprint(strings.Repeat(glyph, cardWidth))
		for y := range out {
			out[y] = fill
		}
		return out
	}
	out[cardHeight/2-1] = paint.Sprint(center(glyph, cardWidth))
	return out
}

func isBackFill(glyph string) bool {
	switch glyph {
	case "▒", "░", "▓", "█":
		return true
	}
	return false
}

func label(id string) string {
	base := id
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// center pads text to the given number of terminal cells, cutting it when it is wider
func center(text string, cells int) string {
	var b strings.Builder
	used := 0
	for _, r := range text {
		w := runeCells(r)
		if used+w > cells {
			break
		}
		b.WriteRune(r)
		used += w
	}
	pad := cells - used
	return strings.Repeat(" ", pad/2) + b.String() + strings.Repeat(" ", pad-pad/2)
}

func runeCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
