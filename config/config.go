package config

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"food-marketplace-api/models"
)

type App struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// Database
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"food_marketplace.db"`

	// Credentials
	JWTSecret  string        `envconfig:"JWT_SECRET" default:"food_marketplace_super_secret"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`
	OTPTTL     time.Duration `envconfig:"OTP_TTL" default:"30m"`

	// Orders
	OrderReadyTime         int  `envconfig:"ORDER_READY_TIME" default:"45"`
	OrderStrictTransitions bool `envconfig:"ORDER_STRICT_TRANSITIONS" default:"false"`

	ImageDir    string   `envconfig:"IMAGE_DIR" default:"images"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Messaging; an empty URL falls back to the log notifier
	RabbitURL     string `envconfig:"RABBIT_URL"`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"marketplace.exchange"`

	// Tracing; an empty endpoint disables it
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads an optional .env file and then the environment
func Load() (App, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded, using environment variables")
	}
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// OpenDB connects to the configured database and migrates all models
func OpenDB(c App) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch c.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(c.DBDSN)
	case "postgres":
		dialector = postgres.Open(c.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Printf("✅ Database (%s) connected and migrated successfully", c.DBDriver)
	return db, nil
}

// Migrate auto-migrates every persisted model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.CustomerOrder{},
		&models.Admin{},
		&models.Vendor{},
		&models.Food{},
		&models.Order{},
		&models.OrderStatusHistory{},
		&models.Offer{},
	)
}
