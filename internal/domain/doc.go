// Package domain contains the core model for ghrepo.
//
// The domain is transport- and persistence-agnostic: it does not depend on INI or YAML
// parsing, net/http, HTML, or the filesystem. Infra/adapters map into/from these types.
package domain
