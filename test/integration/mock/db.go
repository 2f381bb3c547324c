package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory sqlite database for the BDD suite. The
// injector and the step definitions both talk to the same connection, so
// seeded collectors and members are visible to the API under test.
type Db struct {
	DbConn *gorm.DB
	// models maps table name to a model struct, used for migration and
	// for reflection-driven table assertions in the steps.
	models map[string]any
}

// NewDb opens the shared in-memory database and migrates the given models.
// The name keeps the sqlite shared-cache URI distinct per suite.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(name, models)
	})
	return db
}

func open(name string, models map[string]any) *Db {
	uri := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	sqlDB, err := sql.Open("sqlite", uri)
	if err != nil {
		panic(err)
	}

	// A single connection keeps the shared in-memory database alive for
	// the whole suite.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open suite database: " + err.Error())
	}

	d := &Db{DbConn: conn, models: models}
	if err := d.migrate(); err != nil {
		panic("failed to migrate suite database: " + err.Error())
	}
	return d
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, model := range d.models {
		modelList = append(modelList, model)
	}
	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}
	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

// ClearDB empties every table between scenarios, keeping the schema.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetModel returns the model struct registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
