// Package imagestore persists discovery thumbnails on local disk.
package imagestore

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/imaging"
	"github.com/faunadex/faunadex-go/internal/logging"
)

var logger = logging.ForService("imagestore")

// Store writes discovery thumbnails to a directory and serves them by URL.
type Store struct {
	settings conf.ThumbnailSettings
}

// New creates a Store and ensures the thumbnail directory exists.
func New(settings conf.ThumbnailSettings) (*Store, error) {
	if err := os.MkdirAll(settings.Path, 0o755); err != nil {
		return nil, errors.New(err).
			Component("imagestore").
			Category(errors.CategoryFileIO).
			Context("path", settings.Path).
			Build()
	}
	return &Store{settings: settings}, nil
}

// SaveThumbnail downsizes the frame and writes it as a JPEG named
// {session}_{animal}_{unix_ts}.jpg. It returns the public URL of the
// stored thumbnail.
func (s *Store) SaveThumbnail(frame *fauna.ImageFrame, sessionID, animalName string) (string, error) {
	img, err := imaging.Decode(frame)
	if err != nil {
		return "", err
	}
	img = imaging.Resize(img, s.settings.MaxSize)

	filename := fmt.Sprintf("%s_%s_%d.jpg",
		sanitize(sessionID), sanitize(animalName), time.Now().Unix())

	file, err := os.Create(filepath.Join(s.settings.Path, filename))
	if err != nil {
		return "", errors.New(err).
			Component("imagestore").
			Category(errors.CategoryImageStore).
			Context("filename", filename).
			Build()
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: s.settings.Quality}); err != nil {
		return "", errors.New(err).
			Component("imagestore").
			Category(errors.CategoryImageStore).
			Context("filename", filename).
			Build()
	}

	logger.Debug("thumbnail stored", "filename", filename)
	return s.URL(filename), nil
}

// URL returns the public URL for a stored thumbnail filename.
func (s *Store) URL(filename string) string {
	return strings.TrimSuffix(s.settings.BaseURL, "/") + "/" + filename
}

// Open returns the on-disk path of a thumbnail, rejecting names that try
// to escape the thumbnail directory.
func (s *Store) Open(filename string) (string, error) {
	if !validFilename(filename) {
		return "", errors.Newf("invalid thumbnail filename %q", filename).
			Component("imagestore").
			Category(errors.CategoryValidation).
			Build()
	}
	path := filepath.Join(s.settings.Path, filename)
	if _, err := os.Stat(path); err != nil {
		return "", errors.New(fmt.Errorf("%w: thumbnail %s", fauna.ErrAnimalNotFound, filename)).
			Component("imagestore").
			Category(errors.CategoryNotFound).
			Build()
	}
	return path, nil
}

// Delete removes a stored thumbnail. Missing files are not an error.
func (s *Store) Delete(filename string) error {
	if !validFilename(filename) {
		return errors.Newf("invalid thumbnail filename %q", filename).
			Component("imagestore").
			Category(errors.CategoryValidation).
			Build()
	}
	err := os.Remove(filepath.Join(s.settings.Path, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// validFilename accepts plain jpg names only, no separators or traversal.
func validFilename(filename string) bool {
	if filename == "" || filename != filepath.Base(filename) {
		return false
	}
	if strings.Contains(filename, "..") {
		return false
	}
	return strings.HasSuffix(filename, ".jpg")
}

// sanitize reduces a name component to lowercase alphanumerics, dashes
// and underscores so it is safe inside a filename.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
