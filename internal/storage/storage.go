package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		env := config.GetEnv()

		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			env.PostgresHost,
			env.PostgresPort,
			env.PostgresUser,
			env.PostgresPassword,
			env.PostgresDb,
		)

		database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
			// Map driver errors to gorm sentinels such as ErrDuplicatedKey.
			TranslateError: true,
		})
		if err != nil {
			panic("failed to connect to postgres: " + err.Error())
		}

		sqlDb, err := database.DB()
		if err != nil {
			panic("failed to get underlying sql.DB: " + err.Error())
		}

		sqlDb.SetMaxOpenConns(25)
		sqlDb.SetMaxIdleConns(5)
		sqlDb.SetConnMaxLifetime(30 * time.Minute)

		db = database
	})

	return db
}

// Migrate runs gorm auto-migration for the given models. Called once from
// main before any request handling starts.
func Migrate(models ...any) {
	if err := GetDb().AutoMigrate(models...); err != nil {
		panic("failed to run migrations: " + err.Error())
	}
}
