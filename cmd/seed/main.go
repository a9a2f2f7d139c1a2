package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/anuntech/racaforte-backend-sub000/utils"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func init() {
	_ = godotenv.Load()
}

// main creates an admin account.
// Usage: go run ./cmd/seed -email ops@example.com -name "Ops"
// Missing values are prompted for.
func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password (prompted when empty)")
	flag.Parse()

	utils.InitLogger("development")

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("RACAFORTE - Admin Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	config.AutoMigrate(&models.Admin{})

	in := bufio.NewReader(os.Stdin)
	if *email == "" {
		*email = prompt(in, "Email: ", nonEmpty("Email"))
	}
	if *name == "" {
		*name = prompt(in, "Name: ", nonEmpty("Name"))
	}
	auth := services.GetAuthService()
	if *password == "" {
		*password = prompt(in, "Password (min 8 characters): ", func(s string) error {
			if len(s) < services.MinPasswordLength {
				return services.ErrWeakPassword
			}
			return nil
		})
		first := *password
		prompt(in, "Confirm Password: ", func(s string) error {
			if s != first {
				return errors.New("passwords do not match")
			}
			return nil
		})
	}

	*email = strings.ToLower(*email)

	var existing models.Admin
	err := config.Gorm.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		fmt.Printf("❌ Admin with email '%s' already exists\n", *email)
		os.Exit(1)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("database error")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	admin := models.Admin{
		Email:        *email,
		Name:         *name,
		PasswordHash: hash,
		Status:       "active",
	}
	if err := config.Gorm.Create(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	fmt.Println()
	fmt.Println("✅ Admin created")
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Name:  %s\n", admin.Name)
	fmt.Println()
	fmt.Println("Login at POST /api/v1/auth/login with email and password")
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// prompt reads lines until validate accepts one.
func prompt(in *bufio.Reader, label string, validate func(string) error) string {
	for {
		fmt.Print(label)
		line, err := in.ReadString('\n')
		value := strings.TrimSpace(line)
		vErr := validate(value)
		if vErr == nil {
			return value
		}
		fmt.Println("❌", vErr)
		if err != nil {
			log.Fatal().Err(err).Msg("input closed")
		}
	}
}
