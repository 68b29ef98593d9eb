package storage

// ApiStore defines the complete set of owner-scoped operations needed by the API.
type ApiStore interface {
	MovementStore
	UserStore
}
