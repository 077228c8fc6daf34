package config

// DefaultDatabasePath is the default path for the library database.
const DefaultDatabasePath = "./schulbibliothek.db"
