package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kovertlabs/deepcover/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 5, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Players
	fmt.Println("--- Players ---")
	rows, err := dbPool.Query(ctx, `
		SELECT player_id, username, balance, profit_per_hour, version, updated_at
		FROM players
		ORDER BY balance DESC
		LIMIT 50
	`)
	if err != nil {
		log.Printf("Failed to query players: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id int64
			var username string
			var balance float64
			var profit int
			var version int64
			var updatedAt time.Time
			if err := rows.Scan(&id, &username, &balance, &profit, &version, &updatedAt); err != nil {
				log.Printf("Failed to scan player: %v", err)
				continue
			}
			fmt.Printf("ID: %d, Username: %s, Balance: %.0f, Profit/h: %d, Version: %d, UpdatedAt: %v\n",
				id, username, balance, profit, version, updatedAt)
		}
	}

	// Dump Cells
	fmt.Println("\n--- Cells ---")
	query := `
		SELECT c.cell_id, c.invite_code, COUNT(m.player_id)
		FROM cells c
		LEFT JOIN cell_members m ON m.cell_id = c.cell_id
		GROUP BY c.cell_id, c.invite_code
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query cells: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, invite string
			var members int
			if err := rows.Scan(&id, &invite, &members); err != nil {
				log.Printf("Failed to scan cell: %v", err)
				continue
			}
			fmt.Printf("CellID: %s, Invite: %s, Members: %d\n", id, invite, members)
		}
	}

	// Event log totals
	fmt.Println("\n--- Event Log ---")
	rows, err = dbPool.Query(ctx, `
		SELECT event_type, COUNT(*)
		FROM event_log
		GROUP BY event_type
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		log.Printf("Failed to query event log: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var eventType string
			var count int64
			if err := rows.Scan(&eventType, &count); err != nil {
				log.Printf("Failed to scan event row: %v", err)
				continue
			}
			fmt.Printf("%s: %d\n", eventType, count)
		}
	}
}
