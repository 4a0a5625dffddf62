// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/mailer"
)

// DBDeps holds database and backend dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	FileStorage   storage.Store
	Mailer        *mailer.Mailer
}
