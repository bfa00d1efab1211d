package media

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoImages is returned when the image directory holds nothing usable.
var ErrNoImages = errors.New("no images available")

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Library picks random images from a local directory.
type Library struct {
	dir string
	rng *rand.Rand
}

// NewLibrary creates an image library over the given directory. The directory
// does not need to exist; Pick reports ErrNoImages until it does.
func NewLibrary(dir string, rng *rand.Rand) *Library {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Library{dir: dir, rng: rng}
}

// Pick returns the path of a random image, or ErrNoImages when the directory
// is missing, unreadable, or holds no supported files.
func (l *Library) Pick() (string, error) {
	if l.dir == "" {
		return "", ErrNoImages
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return "", ErrNoImages
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			images = append(images, filepath.Join(l.dir, entry.Name()))
		}
	}
	if len(images) == 0 {
		return "", ErrNoImages
	}
	return images[l.rng.Intn(len(images))], nil
}
