// Package bootstrap registers the standalone customers table for hosts that
// run go-progressions without the customer data service. Import it for the
// side effect:
//
//	import _ "github.com/learnpath/go-progressions/migrations/bootstrap"
package bootstrap

import (
	progressions "github.com/learnpath/go-progressions"
	"github.com/learnpath/go-progressions/migrations"
)

func init() {
	migrations.Register(progressions.GetCustomerBootstrapMigrationsFS())
}
