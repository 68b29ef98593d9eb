package storage

// Storage defines the root interface for the entire data layer.
// Components should depend on the narrower interfaces (ApiStore, ReminderStore, etc.) instead of this one.
type Storage interface {
	ApiStore
	ReminderStore
	ConnectionStore
}

//go:generate mockery --name ApiStore --output ./mocks --outpkg mocks
//go:generate mockery --name ReminderStore --output ./mocks --outpkg mocks
//go:generate mockery --name ConnectionStore --output ./mocks --outpkg mocks
