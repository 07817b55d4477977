package carform

import (
	"github.com/rshade/dealerdesk/internal/api"
)

// Form encodes the draft as the multipart body the backend expects: scalar
// fields, specifications as JSON, the kept backend images as JSON, new files
// in gallery order and the filenames to delete.
func (d *Draft) Form() (*api.Form, error) {
	form := &api.Form{}
	for _, f := range Fields {
		form.Add(f, d.values[f])
	}
	if err := form.AddJSON("specifications", d.specifications); err != nil {
		return nil, err
	}
	if existing := d.Gallery.existing(); len(existing) > 0 {
		if err := form.AddJSON("existingImages", existing); err != nil {
			return nil, err
		}
	}
	for _, path := range d.Gallery.local() {
		form.AddFile("images", path)
	}
	if deleted := d.Gallery.Deleted(); len(deleted) > 0 {
		if err := form.AddJSON("deletedImageFilenames", deleted); err != nil {
			return nil, err
		}
	}
	return form, nil
}
