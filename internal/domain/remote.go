package domain

// GuardedRemote is the remote name whose presence stops a run before any network access.
const GuardedRemote = "github"

// RemoteReference is the remote written into the local repository after creation.
type RemoteReference struct {
	Alias    string `json:"alias"`
	CloneURL string `json:"clone_url"`
}
