package migrations

import (
	"io/fs"

	progressions "github.com/learnpath/go-progressions"
)

// The core set covers the three progression-domain tables; the customers
// bootstrap table deliberately stays out so hosts backed by the customer data
// service never create it.
func init() {
	coreFS, err := fs.Sub(progressions.GetCoreMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
