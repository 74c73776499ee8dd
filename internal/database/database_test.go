package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-assignment-api/internal/config"
	"github.com/yukikurage/task-assignment-api/internal/models"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"gorm.io/gorm/logger"
)

func TestDialector_RejectsMongo(t *testing.T) {
	_, err := Dialector(&config.Config{Store: config.StoreConfig{Driver: config.DriverMongo}})
	assert.Error(t, err)
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{
		App:   config.AppConfig{Env: "test"},
		Store: config.StoreConfig{Driver: config.DriverSQLite},
		DB:    config.DBConfig{SQLitePath: ":memory:"},
	}

	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(context.Background(), db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("tasks"))
	assert.True(t, db.Migrator().HasTable("task_assignments"))
	assert.True(t, db.Migrator().HasIndex(&models.Task{}, "idx_tasks_created_by_date"))
}

func TestGormConfig(t *testing.T) {
	cfg := GormConfig(logger.Silent)
	assert.True(t, cfg.TranslateError)
	assert.True(t, cfg.DisableForeignKeyConstraintWhenMigrating)
}

func TestConnectMongo_RequiresURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), config.MongoConfig{})
	assert.Error(t, err)
}

func TestEnsureMongoIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates every index", func(mt *mtest.T) {
		for range mongoIndexes {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		assert.NoError(mt, EnsureMongoIndexes(context.Background(), mt.DB))
	})

	mt.Run("reports failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Message: "index options conflict",
			Name:    "IndexOptionsConflict",
		}))
		assert.Error(mt, EnsureMongoIndexes(context.Background(), mt.DB))
	})
}
