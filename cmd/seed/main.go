package main

import (
	"log"
	"os"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/model"
	"messaging-backoffice-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Pricing Table...")
	seedPricingEntries(db)

	log.Println("Seeding Top-Up Packages...")
	seedTopUpPackages(db)

	log.Println("Seeding Superadmin...")
	seedSuperAdmin(db)

	log.Println("Seeding completed!")
}

// seedPricingEntries installs the wildcard fallback rows plus a starter set
// of country rates. The wildcard rows guarantee every resolve finds a price.
func seedPricingEntries(db *gorm.DB) {
	entries := []model.PricingEntry{
		// Global fallbacks
		{CountryCode: entity.WildcardCountry, Category: string(entity.CategoryMarketing), MetaCostUsd: 0.0625, PlatformCredits: 1.25, PlatformCurrencyAmount: 1.25, MarkupPercentage: 20},
		{CountryCode: entity.WildcardCountry, Category: string(entity.CategoryUtility), MetaCostUsd: 0.0200, PlatformCredits: 0.40, PlatformCurrencyAmount: 0.40, MarkupPercentage: 20},
		{CountryCode: entity.WildcardCountry, Category: string(entity.CategoryAuthentication), MetaCostUsd: 0.0150, PlatformCredits: 0.30, PlatformCurrencyAmount: 0.30, MarkupPercentage: 20},
		{CountryCode: entity.WildcardCountry, Category: string(entity.CategoryService), IsFree: true},

		// India
		{CountryCode: "IN", Category: string(entity.CategoryMarketing), MetaCostUsd: 0.0107, PlatformCredits: 0.88, PlatformCurrencyAmount: 0.88, MarkupPercentage: 15},
		{CountryCode: "IN", Category: string(entity.CategoryUtility), MetaCostUsd: 0.0014, PlatformCredits: 0.125, PlatformCurrencyAmount: 0.125, MarkupPercentage: 15},
		{CountryCode: "IN", Category: string(entity.CategoryAuthentication), MetaCostUsd: 0.0014, PlatformCredits: 0.125, PlatformCurrencyAmount: 0.125, MarkupPercentage: 15},
		{CountryCode: "IN", Category: string(entity.CategoryService), IsFree: true},

		// Indonesia
		{CountryCode: "ID", Category: string(entity.CategoryMarketing), MetaCostUsd: 0.0411, PlatformCredits: 0.95, PlatformCurrencyAmount: 0.95, MarkupPercentage: 15},
		{CountryCode: "ID", Category: string(entity.CategoryUtility), MetaCostUsd: 0.0200, PlatformCredits: 0.45, PlatformCurrencyAmount: 0.45, MarkupPercentage: 15},
		{CountryCode: "ID", Category: string(entity.CategoryAuthentication), MetaCostUsd: 0.0300, PlatformCredits: 0.60, PlatformCurrencyAmount: 0.60, MarkupPercentage: 15},
		{CountryCode: "ID", Category: string(entity.CategoryService), IsFree: true},
	}

	for _, e := range entries {
		e.IsActive = true
		var existing model.PricingEntry
		if err := db.Where("country_code = ? AND category = ?", e.CountryCode, e.Category).First(&existing).Error; err == nil {
			log.Printf("Pricing entry %s/%s already exists, skipping...", e.CountryCode, e.Category)
			continue
		}
		if err := db.Create(&e).Error; err != nil {
			log.Printf("Error creating pricing entry %s/%s: %v", e.CountryCode, e.Category, err)
		} else {
			log.Printf("Created pricing entry: %s/%s", e.CountryCode, e.Category)
		}
	}
}

func seedTopUpPackages(db *gorm.DB) {
	packages := []model.TopUpPackage{
		{Name: "Starter", Credits: 500, Price: 500, Currency: "INR", BonusCredits: 0, SortOrder: 1},
		{Name: "Growth", Credits: 2000, Price: 2000, Currency: "INR", BonusCredits: 100, SortOrder: 2},
		{Name: "Scale", Credits: 5000, Price: 5000, Currency: "INR", BonusCredits: 400, SortOrder: 3},
		{Name: "Enterprise", Credits: 20000, Price: 20000, Currency: "INR", BonusCredits: 2500, SortOrder: 4},
	}

	for _, p := range packages {
		p.IsActive = true
		var existing model.TopUpPackage
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			log.Printf("Package '%s' already exists, skipping...", p.Name)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating package '%s': %v", p.Name, err)
		} else {
			log.Printf("Created package: %s (%.0f credits)", p.Name, p.Credits)
		}
	}
}

// seedSuperAdmin creates the bootstrap account. Credentials come from env so
// nothing secret lands in the repo; the password must be rotated after first
// login anyway.
func seedSuperAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	var existing model.AdminUser
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing admin password: %v", err)
	}

	admin := model.AdminUser{
		Email:        email,
		FullName:     "Platform Superadmin",
		PasswordHash: string(hash),
		Role:         string(entity.AdminRoleSuperAdmin),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error creating superadmin: %v", err)
	}
	log.Printf("Created superadmin: %s", email)
}
