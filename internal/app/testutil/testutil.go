// Package testutil общие фикстуры для тестов: SQLite в памяти и справочники
package testutil

import (
	"context"
	"testing"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/role"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB открывает чистую базу в памяти с применённой схемой.
// Одно соединение: у каждого соединения SQLite своя база в памяти.
func NewDB(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := repository.NewWithDB(db)
	require.NoError(t, repo.AutoMigrate())
	return repo, db
}

// Fixture набор пользователей и справочников
type Fixture struct {
	Admin         *ds.User
	Manager       *ds.User
	OtherManager  *ds.User
	KAE           *ds.User
	OtherKAE      *ds.User
	Inactive      *ds.User
	Store         *ds.Store
	InactiveStore *ds.Store
	Shampoo       *ds.Product
	Soap          *ds.Product
}

func createUser(t *testing.T, db *gorm.DB, email, name string, r role.Role) *ds.User {
	t.Helper()
	u := &ds.User{UUID: uuid.New(), Email: email, FullName: name, Role: r}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

// Seed наполняет базу стандартным набором данных
func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{
		Admin:        createUser(t, db, "admin@example.com", "Ada Admin", role.Administrator),
		Manager:      createUser(t, db, "manager@example.com", "Mona Manager", role.Manager),
		OtherManager: createUser(t, db, "manager2@example.com", "Max Manager", role.Manager),
		KAE:          createUser(t, db, "kae@example.com", "Kim Account", role.KAE),
		OtherKAE:     createUser(t, db, "kae2@example.com", "Karl Account", role.KAE),
		Inactive:     createUser(t, db, "old@example.com", "Olga Old", role.Inactive),
	}

	f.Store = &ds.Store{Name: "Carrefour Mall", AccountExecutiveID: &f.KAE.ID, IsActive: true}
	require.NoError(t, db.Create(f.Store).Error)
	f.InactiveStore = &ds.Store{Name: "Closed Corner", IsActive: false}
	require.NoError(t, db.Create(f.InactiveStore).Error)

	f.Shampoo = &ds.Product{Description: "Shampoo 400ml", Barcode: "6281", SapCode: "SAP-1", Type: "HC"}
	require.NoError(t, db.Create(f.Shampoo).Error)
	f.Soap = &ds.Product{Description: "Soap 125g", Barcode: "6282", SapCode: "SAP-2", Type: "HC"}
	require.NoError(t, db.Create(f.Soap).Error)

	return f
}
