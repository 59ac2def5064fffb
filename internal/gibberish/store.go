package gibberish

import "io"

// Store is where input files are read from and output files are written to.
// Names are the paths the user supplied; each backend decides how to map them.
type Store interface {
	// Exists reports whether name is present.
	Exists(name string) (bool, error)

	// Get writes the content of name to w. A missing name returns an error
	// matching ErrFileNotFound.
	Get(name string, w io.Writer) error

	// Put stores size bytes read from r under name, replacing any existing
	// content. Implementations must not leave a partial file behind on error.
	Put(name string, r io.Reader, size int64) error

	// ValidateSetup verifies that the store is accessible and properly configured.
	ValidateSetup() error
}
