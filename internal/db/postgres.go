package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

var DB *gorm.DB

func Init() {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_USER", "minishop"),
		getEnv("POSTGRES_PASSWORD", "minishop"),
		getEnv("POSTGRES_DB", "minishop"),
		getEnv("DB_PORT", "5432"),
	)

	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate creates or updates the full MINISHOP schema.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.Store{},
		&models.Category{},
		&models.Product{},
		&models.Variation{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
		&models.Banner{},
		&models.Setting{},
	)
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
