package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// Flips lapsed trials to trial_expired and lapsed paid subscriptions to
// expired. Meant to run from cron; safe to run repeatedly.

var (
	dsn    = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun = flag.Bool("dry-run", false, "Report counts only; no DB writes")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}
	defer db.Close()

	if *dryRun {
		var trials, paid int64
		err := db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM app_profiles.profiles
			WHERE subscription_status = 'trial' AND trial_expires_at < NOW()`).Scan(&trials)
		if err != nil {
			log.Fatalf("Trial count failed: %v", err)
		}
		err = db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM app_profiles.profiles
			WHERE subscription_status IN ('active', 'pending_cancellation')
			AND subscription_expires_at IS NOT NULL
			AND subscription_expires_at < NOW()`).Scan(&paid)
		if err != nil {
			log.Fatalf("Subscription count failed: %v", err)
		}
		fmt.Printf("Dry run: %d trials and %d subscriptions would expire\n", trials, paid)
		return
	}

	res, err := db.ExecContext(ctx, `
		UPDATE app_profiles.profiles
		SET subscription_status = 'trial_expired', updated_at = NOW()
		WHERE subscription_status = 'trial' AND trial_expires_at < NOW()`)
	if err != nil {
		log.Fatalf("Trial expiry failed: %v", err)
	}
	trials, _ := res.RowsAffected()

	// pending_cancellation rides out the paid period, then lands on cancelled
	// instead of expired so support can tell the two apart.
	res, err = db.ExecContext(ctx, `
		UPDATE app_profiles.profiles
		SET subscription_status = CASE
			WHEN subscription_status = 'pending_cancellation' THEN 'cancelled'
			ELSE 'expired'
		END, updated_at = NOW()
		WHERE subscription_status IN ('active', 'pending_cancellation')
		AND subscription_expires_at IS NOT NULL
		AND subscription_expires_at < NOW()`)
	if err != nil {
		log.Fatalf("Subscription expiry failed: %v", err)
	}
	paid, _ := res.RowsAffected()

	fmt.Printf("✓ Expired %d trials, %d subscriptions\n", trials, paid)
}
