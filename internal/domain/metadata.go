package domain

// ProjectMetadata identifies the project being published.
type ProjectMetadata struct {
	Name        string
	Description string
	HomepageURL string
}

// MetaDocument is what a metadata file yields before overrides are applied.
type MetaDocument struct {
	Path     string
	Name     string
	Abstract string
}
