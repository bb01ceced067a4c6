// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// The Mongo fields are nil when the memory backend is configured; handlers only
// ever see Store.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Store         docstore.Store
}
