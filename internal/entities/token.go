package entities

// Token is a map token placed by the host application. This module never
// creates tokens; it only reads them from creation events and writes the
// resolved name back.
type Token struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ActorID string `json:"actor_id"`

	// ActorLinked reports whether the token shares live state with its
	// character record instead of holding an independent snapshot.
	ActorLinked bool `json:"actor_linked"`
}
