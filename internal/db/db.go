package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lojf/kindernet/internal/models"
)

var conn *gorm.DB

// Init opens the reporting database and migrates the projection tables.
// The default DSN is a shared in-memory database; nothing outlives the process.
func Init(dsn string) error {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", dsn, err)
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	// One connection that never expires also keeps an in-memory db alive.
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(gdb); err != nil {
		return err
	}

	conn = gdb
	log.Println("reporting database ready (sqlite)")
	return nil
}

// Migrate creates the projection tables and their indexes on gdb.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.KindergartenRow{},
		&models.BranchRow{},
		&models.GroupRow{},
		&models.TeacherRow{},
		&models.StudentRow{},
		&models.AttendanceRow{},
		&models.PaymentRow{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Composite indexes that GORM doesn't auto-create from struct tags.
	for _, stmt := range []string{
		"CREATE INDEX IF NOT EXISTS idx_att_student_date ON attendance_records(student_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_students_kg_group ON students(kindergarten_id, group_id)",
	} {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func Conn() *gorm.DB {
	return conn
}
