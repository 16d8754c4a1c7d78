package progressions

import "embed"

// GetMigrationsFS exposes the full SQL migration tree so host applications can
// register it with go-persistence-bun (or another migration runner).
func GetMigrationsFS() embed.FS {
	return MigrationsFS
}

// GetCoreMigrationsFS exposes only the go-progressions owned tables.
func GetCoreMigrationsFS() embed.FS {
	return CoreMigrationsFS
}

// GetCustomerBootstrapMigrationsFS exposes the standalone customers table for
// hosts without an external customer schema.
func GetCustomerBootstrapMigrationsFS() embed.FS {
	return CustomerBootstrapMigrationsFS
}
