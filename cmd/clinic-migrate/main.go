// clinic-migrate resets the clinic schema and optionally seeds demo data.
// Intended for local development and fresh deployments, not for running
// against a populated store.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"clinic-api/internal/auth"
	"clinic-api/internal/config"
	"clinic-api/internal/models"
)

func main() {
	drop := flag.Bool("drop", false, "drop existing tables before creating")
	seed := flag.Bool("seed", false, "insert demo data after creating tables")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.Database.DSN == "" {
		log.Fatal("POSTGRES_DSN not set")
	}

	ctx := context.Background()
	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqldb.Close()
	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	if *drop {
		log.Println("Dropping tables...")
		dropTables(ctx, db)
	}

	log.Println("Creating tables...")
	createTables(ctx, db)

	if *seed {
		log.Println("Seeding demo data...")
		seedData(ctx, db)
	}

	log.Println("Done.")
}

// tables in dependency order: payments reference bookings, bookings
// reference users.
func tableModels() []interface{} {
	return []interface{}{
		(*models.Account)(nil),
		(*models.Booking)(nil),
		(*models.Payment)(nil),
		(*models.ContactSubmission)(nil),
		(*models.Appointment)(nil),
	}
}

func dropTables(ctx context.Context, db *bun.DB) {
	tables := tableModels()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(tables[i]).IfExists().Cascade().Exec(ctx); err != nil {
			log.Fatalf("Failed to drop table for %T: %v", tables[i], err)
		}
	}
}

func createTables(ctx context.Context, db *bun.DB) {
	for _, m := range tableModels() {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			log.Fatalf("Failed to create table for %T: %v", m, err)
		}
	}
}

func seedData(ctx context.Context, db *bun.DB) {
	now := time.Now().UTC()

	hash, err := auth.HashPassword("test123")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	account := models.Account{
		ID:           uuid.NewString(),
		Mobile:       "9876543210",
		PasswordHash: hash,
		Name:         "Demo User",
		Email:        "demo@example.com",
		CreatedAt:    now,
	}
	if _, err := db.NewInsert().Model(&account).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed account: %v", err)
	}

	booking := models.Booking{
		ID:           uuid.NewString(),
		UserID:       account.ID,
		PackageName:  "Basic Health Checkup",
		PackagePrice: 99,
		Status:       models.BookingPending,
		CreatedAt:    now,
	}
	if _, err := db.NewInsert().Model(&booking).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed booking: %v", err)
	}

	payment := models.Payment{
		ID:            "pay_seed_000001",
		BookingID:     booking.ID,
		UserID:        account.ID,
		Amount:        99,
		PaymentMethod: "cash",
		Status:        models.PaymentPending,
		TransactionID: "CASH-0",
		CreatedAt:     now,
	}
	if _, err := db.NewInsert().Model(&payment).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed payment: %v", err)
	}

	log.Printf("Seeded demo account %s (mobile 9876543210, password test123)", account.ID)
}
