package common

// Blob keys under which collections and the session are persisted.
const (
	KeyUsers       = "users"
	KeyImages      = "images"
	KeyAlbums      = "albums"
	KeyCurrentUser = "currentUser"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
