package carform

import (
	"path/filepath"
	"slices"

	"github.com/rshade/dealerdesk/internal/model"
)

// Image is one gallery slot: either an image already stored on the backend
// or a local file to upload.
type Image struct {
	Existing *model.Image
	Local    string
}

// IsExisting reports whether the image is already on the backend.
func (i Image) IsExisting() bool { return i.Existing != nil }

// Name is a short label for the image.
func (i Image) Name() string {
	if i.Existing != nil {
		if i.Existing.Filename != "" {
			return i.Existing.Filename
		}
		return filepath.Base(i.Existing.Path)
	}
	return filepath.Base(i.Local)
}

// Gallery is the ordered image list of a draft.
type Gallery struct {
	images  []Image
	deleted []string
}

// NewGallery starts a gallery from the images saved on a car.
func NewGallery(existing []model.Image) Gallery {
	g := Gallery{images: make([]Image, 0, len(existing))}
	for i := range existing {
		img := existing[i]
		g.images = append(g.images, Image{Existing: &img})
	}
	return g
}

// Images returns the gallery in display order.
func (g *Gallery) Images() []Image { return slices.Clone(g.images) }

// Len returns the number of images.
func (g *Gallery) Len() int { return len(g.images) }

// Deleted returns the filenames of removed backend images.
func (g *Gallery) Deleted() []string { return slices.Clone(g.deleted) }

// Add appends local files.
func (g *Gallery) Add(paths ...string) {
	for _, p := range paths {
		g.images = append(g.images, Image{Local: p})
	}
}

// Move drags the image at from to position to. Equal or out-of-range
// indices leave the gallery unchanged.
func (g *Gallery) Move(from, to int) bool {
	n := len(g.images)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	img := g.images[from]
	g.images = slices.Delete(g.images, from, from+1)
	g.images = slices.Insert(g.images, to, img)
	return true
}

// Remove drops the image at i. Removing a backend image records its filename
// so the server deletes it on save.
func (g *Gallery) Remove(i int) bool {
	if i < 0 || i >= len(g.images) {
		return false
	}
	img := g.images[i]
	g.images = slices.Delete(g.images, i, i+1)
	if img.Existing != nil && img.Existing.Filename != "" {
		g.deleted = append(g.deleted, img.Existing.Filename)
	}
	return true
}

// existing returns the backend images still in the gallery, in order.
func (g *Gallery) existing() []model.Image {
	var out []model.Image
	for _, img := range g.images {
		if img.Existing != nil {
			out = append(out, model.Image{Path: img.Existing.Path, Filename: img.Existing.Filename})
		}
	}
	return out
}

// local returns the files to upload, in order.
func (g *Gallery) local() []string {
	var out []string
	for _, img := range g.images {
		if img.Existing == nil {
			out = append(out, img.Local)
		}
	}
	return out
}
