// Command createadmin seeds an admin account into the shared store so the
// first superuser can log in.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("--- Create a new Admin User ---")
	email := prompt(reader, "Enter admin email: ")
	if email == "" {
		fatal("email cannot be empty")
	}
	password := prompt(reader, "Enter admin password: ")
	if password == "" {
		fatal("password cannot be empty")
	}
	role := prompt(reader, "Enter role (superuser, editor, viewer) [default: superuser]: ")
	if role == "" {
		role = models.RoleSuperuser
	}
	role = strings.ToLower(role)
	if !models.ValidRole(role) {
		fatal("invalid role %q: choose superuser, editor or viewer", role)
	}

	st, err := openStore(cfg)
	if err != nil {
		fatal("store connection failed: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fatal("failed to hash password: %v", err)
	}

	admins := store.NewCollection[models.Admin](st, store.KeyAdmins)
	err = admins.Mutate(ctx, func(existing []models.Admin) ([]models.Admin, error) {
		for _, a := range existing {
			if a.Email == email {
				return nil, fmt.Errorf("an admin with the email %q already exists", email)
			}
		}
		return append(existing, models.Admin{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
		}), nil
	})
	if err != nil {
		fatal("could not create admin: %v", err)
	}

	fmt.Printf("Admin user %q with role %q was created successfully.\n", email, role)
	fmt.Println("You can now log in with these credentials.")
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreBackend == "postgres" {
		return store.NewPostgres(cfg)
	}
	return store.NewRedis(cfg), nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
