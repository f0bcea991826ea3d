package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	// exactly one ping from our code
	mock.ExpectPing()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenSQLite_MigrateAndPing(t *testing.T) {
	gdb, err := OpenSQLite("file::memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"loans", "loan_updates", "parameters", "transfers"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("table %s missing", table)
		}
	}
	// idempotent
	if err := Migrate(gdb); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if err := Ping(gdb)(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
