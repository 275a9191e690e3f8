package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/domain"
	"staybook/internal/repository"
)

var cities = []string{"Almaty", "Astana", "Shymkent", "Karaganda", "Aktau"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)

	admin := seedUser(ctx, users, "Admin", "Root", "admin@staybook.local", domain.RoleAdmin)
	log.Printf("admin ready: %s (id=%d)", admin.Email, admin.ID)

	customer := seedUser(ctx, users, "Dana", "Guest", "customer@staybook.local", domain.RoleCustomer)
	log.Printf("customer ready: %s (id=%d)", customer.Email, customer.ID)

	for i := 1; i <= 3; i++ {
		host := seedUser(ctx, users,
			fmt.Sprintf("Host%d", i), "Owner",
			fmt.Sprintf("host%d@staybook.local", i),
			domain.RoleHost,
		)
		log.Printf("host ready: %s (id=%d)", host.Email, host.ID)

		for j := 1; j <= 3; j++ {
			city := cities[rand.Intn(len(cities))]
			p := &domain.Property{
				HostID:      host.ID,
				Title:       fmt.Sprintf("Apartment %d by %s", j, host.FirstName),
				Description: "Bright apartment close to the center.",
				Address:     fmt.Sprintf("%d Abay Ave", 10*i+j),
				City:        city,
				Beds:        1 + rand.Intn(4),
				Price:       float64(8000 + rand.Intn(12000)),
				Status:      domain.PropertyAvailable,
			}
			if err := properties.Create(ctx, p); err != nil {
				log.Fatalf("seed property: %v", err)
			}
			log.Printf("property ready: %q in %s (id=%d)", p.Title, p.City, p.ID)
		}
	}

	log.Println("seed complete, password for all accounts: password123")
}

func seedUser(ctx context.Context, users *repository.UserRepository, first, last, email string, role domain.UserRole) *domain.User {
	if existing, err := users.GetByEmail(ctx, email); err == nil {
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	return u
}
