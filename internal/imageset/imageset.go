package imageset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file describing an image set
const ManifestName = "set.toml"

// GlyphPrefix marks a face identifier that is a text glyph instead of a file
const GlyphPrefix = "glyph:"

// ImageSet is a collection of card faces and a shared back face
type ImageSet struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
	Path        string
	Back        string
	Faces       []Face
}

// Face is one front face of the set
type Face struct {
	Image string
	Label string
}

// Manifest is the decoded set.toml
type Manifest struct {
	Set   SetSection    `toml:"set"`
	Faces []FaceSection `toml:"faces"`
}

type SetSection struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	SchemaVersion string `toml:"schema_version"`
	Author        string `toml:"author"`
	Description   string `toml:"description"`
	Back          string `toml:"back"`
}

type FaceSection struct {
	Image string `toml:"image"`
	Label string `toml:"label"`
}

var builtinGlyphs = []string{
	"★", "♥", "♦", "♣", "♠", "☀", "☂", "☃", "☎",
	"♪", "⚓", "⚡", "✈", "✿", "☯", "♞", "⌛", "☕",
	"♜", "♝", "♛", "♚", "☘", "⚽", "✂", "✉", "⚙",
	"♻", "☢", "⚑", "✎", "❄", "☾", "⚘", "♫", "☺",
}

// Builtin returns the glyph set used when no image set is configured
func Builtin() *ImageSet {
	s := &ImageSet{
		ID:          "builtin",
		Name:        "Built-in glyphs",
		Description: "Text glyphs, no image files needed",
		Back:        GlyphPrefix + "▒",
	}
	for _, g := range builtinGlyphs {
		s.Faces = append(s.Faces, Face{Label: g})
	}
	return s
}

// LoadImageSet loads an image set from a directory
func LoadImageSet(setPath string) (*ImageSet, error) {
	manifestPath := filepath.Join(setPath, ManifestName)
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s", ManifestName, setPath)
	}

	var m Manifest
	if _, err := toml.DecodeFile(manifestPath, &m); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", ManifestName, err)
	}

	s := &ImageSet{
		ID:          m.Set.ID,
		Name:        m.Set.Name,
		Version:     m.Set.Version,
		Author:      m.Set.Author,
		Description: m.Set.Description,
		Path:        setPath,
		Back:        m.Set.Back,
	}
	if s.Name == "" {
		s.Name = filepath.Base(setPath)
	}
	if s.Back == "" {
		s.Back = GlyphPrefix + "▒"
	}
	for _, f := range m.Faces {
		s.Faces = append(s.Faces, Face{Image: f.Image, Label: f.Label})
	}

	if len(s.Faces) == 0 {
		return nil, fmt.Errorf("image set %s has no faces", s.Name)
	}

	// Two faces that look alike would be dealt as different pairs.
	seen := make(map[string]int, len(s.Faces))
	for i, f := range s.Faces {
		id := s.Identifier(f)
		if first, ok := seen[id]; ok {
			return nil, fmt.Errorf("image set %s: faces %d and %d are the same (%s)", s.Name, first+1, i+1, id)
		}
		seen[id] = i
	}

	return s, nil
}

// Identifier returns the identifier the board uses for a face: the resolved
// image path, or the glyph form of the label when there is no image.
func (s *ImageSet) Identifier(f Face) string {
	if f.Image == "" {
		label := f.Label
		if label == "" {
			label = "?"
		}
		return GlyphPrefix + label
	}
	return s.resolve(f.Image)
}

// BackIdentifier returns the identifier of the back face
func (s *ImageSet) BackIdentifier() string {
	if strings.HasPrefix(s.Back, GlyphPrefix) {
		return s.Back
	}
	return s.resolve(s.Back)
}

// FaceIdentifiers returns identifiers for the first n faces. n is clipped to
// the number of faces in the set.
func (s *ImageSet) FaceIdentifiers(n int) []string {
	if n > len(s.Faces) || n <= 0 {
		n = len(s.Faces)
	}
	ids := make([]string, 0, n)
	for _, f := range s.Faces[:n] {
		ids = append(ids, s.Identifier(f))
	}
	return ids
}

// LabelFor returns the label of the face with the given identifier
func (s *ImageSet) LabelFor(id string) string {
	for _, f := range s.Faces {
		if s.Identifier(f) == id {
			if f.Label != "" {
				return f.Label
			}
			break
		}
	}
	if glyph, ok := strings.CutPrefix(id, GlyphPrefix); ok {
		return glyph
	}
	return strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))
}

func (s *ImageSet) resolve(p string) string {
	if filepath.IsAbs(p) || s.Path == "" {
		return p
	}
	return filepath.Join(s.Path, p)
}

// ListSets loads every image set in the library. Names holds the directory
// name of each set. Directories that are not valid sets are skipped.
func ListSets(libraryPath string) (sets []*ImageSet, names []string, err error) {
	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading image set library: %w", err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(libraryPath, entry.Name())
		fileInfo, err := os.Stat(entryPath)
		if err != nil || !fileInfo.IsDir() {
			continue
		}

		s, err := LoadImageSet(entryPath)
		if err != nil {
			// Not a valid set, skip
			continue
		}
		sets = append(sets, s)
		names = append(names, entry.Name())
	}

	return sets, names, nil
}
