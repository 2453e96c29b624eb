package storage

// Config - ...
type Config struct {
	DSN string
}

// MessageRepository interface for the message archive
type MessageRepository interface {
	Save(record *Record) error
	DeleteExpired(expiration int) (int, error)
}
