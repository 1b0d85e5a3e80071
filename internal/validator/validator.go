package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/concentration/internal/imageset"
)

// MaxFaces is the largest number of pairs a board can hold
const MaxFaces = 36

// RecommendedFaces is the number of pairs of the default 6x6 board
const RecommendedFaces = 18

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	SetPath  string
	Results  ValidationResults
	manifest imageset.Manifest
}

func NewValidator(setPath string) *Validator {
	return &Validator{
		SetPath: setPath,
		Results: ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateManifest(); err != nil {
		return v.Results, err
	}

	v.validateBack()
	v.validateFaces()

	return v.Results, nil
}

func (v *Validator) validateManifest() error {
	manifestPath := filepath.Join(v.SetPath, imageset.ManifestName)
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", imageset.ManifestName, v.SetPath)
	}

	if _, err := toml.DecodeFile(manifestPath, &v.manifest); err != nil {
		return fmt.Errorf("error parsing %s: %w", imageset.ManifestName, err)
	}

	if v.manifest.Set.ID == "" {
		v.Results.Errors = append(v.Results.Errors, "set.id is required in set.toml")
	}

	if v.manifest.Set.Name == "" {
		v.Results.Errors = append(v.Results.Errors, "set.name is required in set.toml")
	}

	if v.manifest.Set.SchemaVersion == "" {
		v.Results.Warnings = append(v.Results.Warnings, "set.schema_version is not set, assuming 1.0")
	} else if v.manifest.Set.SchemaVersion != "1.0" {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("unsupported schema_version: %s (supported: 1.0)", v.manifest.Set.SchemaVersion))
	}

	return nil
}

// validateBack checks the shared back face
func (v *Validator) validateBack() {
	back := v.manifest.Set.Back
	if back == "" {
		v.Results.Warnings = append(v.Results.Warnings, "set.back is not set, the default back glyph will be used")
		return
	}
	if strings.HasPrefix(back, imageset.GlyphPrefix) {
		return
	}
	v.checkImage("back face", back)
}

// validateFaces checks the face list
func (v *Validator) validateFaces() {
	faces := v.manifest.Faces
	if len(faces) == 0 {
		v.Results.Errors = append(v.Results.Errors, "at least one [[faces]] entry is required")
		return
	}

	if len(faces) > MaxFaces {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("set has %d faces, only the first %d can be used", len(faces), MaxFaces))
	} else if len(faces) < RecommendedFaces {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("set has %d faces, a full board needs %d", len(faces), RecommendedFaces))
	}

	seenImages := make(map[string]int)
	seenLabels := make(map[string]int)
	for i, f := range faces {
		n := i + 1
		if f.Image == "" && f.Label == "" {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("faces[%d] needs an image or a label", n))
			continue
		}

		if f.Image != "" {
			if prev, ok := seenImages[f.Image]; ok {
				v.Results.Errors = append(v.Results.Errors,
					fmt.Sprintf("faces[%d] repeats the image of faces[%d]: %s", n, prev, f.Image))
			} else {
				seenImages[f.Image] = n
			}
			v.checkImage(fmt.Sprintf("faces[%d]", n), f.Image)
			continue
		}

		if prev, ok := seenLabels[f.Label]; ok {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("faces[%d] repeats the glyph of faces[%d]: %s", n, prev, f.Label))
		} else {
			seenLabels[f.Label] = n
		}
	}
}

func (v *Validator) checkImage(what, image string) {
	imagePath := image
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(v.SetPath, image)
	}
	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s image not found: %s", what, image))
		return
	}

	ext := strings.ToLower(filepath.Ext(image))
	for _, known := range imageExtensions {
		if ext == known {
			return
		}
	}
	v.Results.Warnings = append(v.Results.Warnings,
		fmt.Sprintf("%s uses an unsupported image format (%s), it will be shown as text", what, ext))
}
