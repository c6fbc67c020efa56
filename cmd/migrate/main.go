package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/craftlab-hq/ops-backend/internal/config"
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/migration"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "path to config file")
		dryRun     = flag.Bool("dry-run", false, "print planned statements without executing")
		seedAdmin  = flag.Bool("seed-admin", false, "create the initial admin account if none exists")
		verbose    = flag.Bool("verbose", false, "enable SQL logging")
	)
	flag.Parse()

	config.LoadDotEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}
	if *dryRun {
		gormCfg.DryRun = true
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), gormCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Migration completed")

	if *seedAdmin {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	}
}

// seedAdminUser creates an admin account when the users table has none.
// Password comes from ADMIN_PASSWORD; refuses to seed without it.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("Admin account already exists, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required for --seed-admin")
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		UUID:         uuid.New().String(),
		Email:        envOr("ADMIN_EMAIL", "admin@craftlab.local"),
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	fmt.Printf("Seeded admin account %s\n", admin.Email)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
