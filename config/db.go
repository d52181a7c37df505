package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"apartium-backend/models"
	"apartium-backend/utils"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := utils.EnvOrDefault("MYSQL_URL", "")
	if raw == "" {
		raw = utils.EnvOrDefault("DATABASE_URL", "")
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "apartium")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// NewGormLogger routes gorm's SQL log through the shared logrus logger.
func NewGormLogger() logger.Interface {
	level := logger.Warn
	if utils.Logger.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}
	return logger.New(
		utils.Logger,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Migrate creates the schema, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Building{},
		&models.Unit{},
		&models.Resident{},
		&models.ParkingSpot{},
		&models.Vehicle{},
		&models.GuestVisit{},
	)
}

func ConnectDatabase(cfg *Config) error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: NewGormLogger()})
	if err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		utils.Logger.Infof("cannot get raw sql.DB: %v", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	if cfg.SeedDemo {
		SeedDatabase(DB)
	}
	return nil
}
