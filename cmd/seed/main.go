package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"petbooking/internal/infra/db"
	"petbooking/internal/pkg/config"
	"petbooking/internal/pkg/password"
)

type serviceRow struct {
	code        string
	name        string
	description string
	allowedDays string
	startTime   string
	endTime     string
}

type petRow struct {
	name       string
	species    string
	breed      string
	age        int
	ownerName  string
	ownerPhone string
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seedOwner(ctx, pool); err != nil {
		slog.Error("failed to seed owner account", "error", err)
		os.Exit(1)
	}
	if err := seedServices(ctx, pool); err != nil {
		slog.Error("failed to seed service catalog", "error", err)
		os.Exit(1)
	}
	if err := seedPets(ctx, pool); err != nil {
		slog.Error("failed to seed pets", "error", err)
		os.Exit(1)
	}

	slog.Info("seed completed")
}

func seedOwner(ctx context.Context, pool db.DBTX) error {
	hash, err := password.Hash("123456")
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, 'OWNER')
		ON CONFLICT (username) DO NOTHING`,
		"OreoPetBath", hash,
	)
	if err != nil {
		return err
	}

	slog.Info("owner account ready", "username", "OreoPetBath")
	return nil
}

func seedServices(ctx context.Context, pool db.DBTX) error {
	services := []serviceRow{
		{"BATH", "Full Bath", "Shampoo, rinse and blow dry", "MON,TUE,WED,THU,FRI,SAT", "09:00", "18:00"},
		{"GROOM", "Full Grooming", "Bath plus haircut and styling", "TUE,WED,THU,FRI,SAT", "10:00", "17:00"},
		{"NAILS", "Nail Trim", "Nail clipping and filing", "MON,TUE,WED,THU,FRI,SAT", "09:00", "18:00"},
		{"BOARD", "Boarding", "Overnight boarding with daily walks", "MON,TUE,WED,THU,FRI,SAT,SUN", "08:00", "20:00"},
	}

	for _, s := range services {
		_, err := pool.Exec(ctx, `
			INSERT INTO services (code, name, description, allowed_days, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5::time, $6::time)
			ON CONFLICT (code) DO NOTHING`,
			s.code, s.name, s.description, s.allowedDays, s.startTime, s.endTime,
		)
		if err != nil {
			return err
		}
	}

	slog.Info("service catalog ready", "count", len(services))
	return nil
}

func seedPets(ctx context.Context, pool db.DBTX) error {
	pets := []petRow{
		{"Oreo", "DOG", "Maltese", 3, "Kim Minji", "010-1234-5678"},
		{"Latte", "DOG", "Poodle", 5, "Lee Junho", "010-2345-6789"},
		{"Mochi", "CAT", "Korean Shorthair", 2, "Park Soyeon", "010-3456-7890"},
		{"Bori", "DOG", "Shiba Inu", 4, "Choi Hana", "010-4567-8901"},
	}

	for _, p := range pets {
		_, err := pool.Exec(ctx, `
			INSERT INTO pets (name, species, breed, age, owner_name, owner_phone)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (
				SELECT 1 FROM pets WHERE name = $1 AND owner_phone = $6
			)`,
			p.name, p.species, p.breed, p.age, p.ownerName, p.ownerPhone,
		)
		if err != nil {
			return err
		}
	}

	slog.Info("sample pets ready", "count", len(pets))
	return nil
}
