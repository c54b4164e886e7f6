package config

const (
	// DefaultDatabasePath is where the SQLite database lives unless DATABASE_PATH is set
	DefaultDatabasePath = "./bookstore.db"

	// DefaultAuthRealm is announced in the WWW-Authenticate challenge
	DefaultAuthRealm = "Bookstore"
)
