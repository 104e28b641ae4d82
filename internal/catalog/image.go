package catalog

// Image is an artwork reference compared by its path.
type Image struct {
	path string
}

// NewImage wraps path without checking its format or existence.
func NewImage(path string) Image {
	return Image{path: path}
}

// Path returns the stored artwork location.
func (i Image) Path() string {
	return i.path
}

// Equal reports whether both images point at the same path.
func (i Image) Equal(other Image) bool {
	return i.path == other.path
}
