package ports

import "github.com/aalvaropc/ghrepo/internal/domain"

// MetadataReader reads project metadata files from a project root.
type MetadataReader interface {
	// Find returns the path of the metadata file, or KindNotFound.
	Find(root string) (string, error)
	// FindGenerated looks for a metadata file a build tool wrote below root.
	FindGenerated(root string) (string, error)
	Read(path string) (domain.MetaDocument, error)
}
