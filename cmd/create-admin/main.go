// Command-line tool to generate a primary admin account with random credentials.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// generateRandomString creates a random hex string of length n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueEmail tries until an email not already taken is found
func generateUniqueEmail(db *gorm.DB) string {
	for {
		email := "admin_" + generateRandomString(4) + "@jobdesk.local"
		var count int64
		db.Model(&model.Admin{}).Where("email = ?", email).Count(&count)
		if count == 0 {
			return email
		}
		// If email exists, loop again
	}
}

func main() {

	sub := flag.Bool("sub", false, "create a sub-admin instead of a primary admin")
	flag.Parse()

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	// Generate unique email and password
	email := generateUniqueEmail(db.DB)
	password := generateRandomString(8)

	// Hash the password before storing
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	role := model.RolePrimaryAdmin
	if *sub {
		role = model.RoleSubAdmin
	}

	admin := model.Admin{
		Name:     "Generated Admin",
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	// Print credentials (only show plain password here!)
	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Role:     %s\n", admin.Role)
	fmt.Println("======================================")

	os.Exit(0)
}
