package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

var DB *gorm.DB

// Connect opens the pool and migrates the schema. If the DB is not up the
// process dies immediately.
func Connect(cfg *config.Config, log *zap.Logger) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}
}

// Migrate is separate from Connect so the test harness can run it against a
// container database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LeaveRequest{},
		&models.MessEvent{},
		&models.MessAttendance{},
		&models.MessRating{},
		&models.UserTask{},
	)
}
