package terminal

import (
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// ArtCache converts face images to ANSI art of a fixed size and keeps the
// result in memory and, when dir is set, on disk.
type ArtCache struct {
	dir    string
	width  int
	height int
	mem    map[string][]string
}

// NewArtCache creates a cache producing art of width x height character cells
func NewArtCache(dir string, width, height int) *ArtCache {
	return &ArtCache{
		dir:    dir,
		width:  width,
		height: height,
		mem:    make(map[string][]string),
	}
}

// Lines returns the ANSI art for an image file, one string per row
func (c *ArtCache) Lines(imagePath string) ([]string, error) {
	if lines, ok := c.mem[imagePath]; ok {
		if lines == nil {
			return nil, fmt.Errorf("no art for %s", imagePath)
		}
		return lines, nil
	}

	var cachePath string
	if c.dir != "" {
		cacheFilename := fmt.Sprintf("%x.ansi", md5.Sum([]byte(fmt.Sprintf("%s|%dx%d", imagePath, c.width, c.height))))
		cachePath = filepath.Join(c.dir, cacheFilename)
		if data, err := os.ReadFile(cachePath); err == nil {
			lines := splitArt(string(data))
			c.mem[imagePath] = lines
			return lines, nil
		}
	}

	art, err := RenderImageFile(imagePath, c.width, c.height)
	if err != nil {
		c.mem[imagePath] = nil
		return nil, err
	}

	if cachePath != "" {
		if err := os.MkdirAll(c.dir, 0755); err == nil {
			// Cache write failures are ignored
			_ = os.WriteFile(cachePath, []byte(art), 0644)
		}
	}

	lines := splitArt(art)
	c.mem[imagePath] = lines
	return lines, nil
}

func splitArt(art string) []string {
	return strings.Split(strings.TrimSuffix(art, "\n"), "\n")
}

// RenderImageFile converts an image file to ANSI art
func RenderImageFile(imagePath string, width, height int) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return imageToAnsi(img, width, height), nil
}

// imageToAnsi converts an image to ANSI art made of upper half blocks. Each
// cell covers a 2x2 pixel square: the top pair sets the foreground and the
// bottom pair the background.
func imageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var b strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			top := cellColor(resized, col*2, row*2)
			bottom := cellColor(resized, col*2, row*2+1)
			b.WriteString(halfBlock(top, bottom))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cellColor blends the pixel at x,y with its right neighbour
func cellColor(img image.Image, x, y int) colorful.Color {
	return pixel(img, x, y).BlendRgb(pixel(img, x+1, y), 0.5).Clamped()
}

// pixel reads one pixel relative to the image origin. Pixels outside the
// image and fully transparent ones are black.
func pixel(img image.Image, x, y int) colorful.Color {
	p := img.Bounds().Min.Add(image.Pt(x, y))
	if !p.In(img.Bounds()) {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(p.X, p.Y))
	if !ok {
		return colorful.Color{}
	}
	return c
}

// halfBlock draws ▀ with 24-bit foreground and background colors
func halfBlock(top, bottom colorful.Color) string {
	r1, g1, b1 := top.RGB255()
	r2, g2, b2 := bottom.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m", r1, g1, b1, r2, g2, b2)
}
