package persistence

var MigrateURL = migrateURL
