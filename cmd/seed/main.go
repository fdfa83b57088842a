package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tejax-v2/Mediversal-Appointment-API/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	doctorIDs, err := seedDoctors(context.Background(), pool, 50)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	userIDs, err := seedUsers(context.Background(), pool, 500)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, userIDs, doctorIDs, 1000); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]int64, error) {
	log.Printf("seeding %d doctors", count)

	specializations := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := gofakeit.Email()
		phone := gofakeit.Phone()
		spec := specializations[gofakeit.Number(0, len(specializations)-1)]

		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO doctors (name, email, phone, specialization, created_at)
			VALUES ($1, $2, $3, $4, now())
			RETURNING id
		`, name, email, phone, spec).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("doctors seeded")
	return ids, nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, count int) ([]int64, error) {
	log.Printf("seeding %d users", count)

	const batchSize = 100

	ids := make([]int64, 0, count)
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			name := gofakeit.Name()
			email := gofakeit.Email()
			phone := gofakeit.Phone()

			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO users (name, email, phone, created_at)
				VALUES ($1, $2, $3, now())
				RETURNING id
			`, name, email, phone).Scan(&id)
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}
			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		log.Printf("users seeded: %d/%d", end, count)
	}

	log.Println("users seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, userIDs, doctorIDs []int64, count int) error {
	log.Printf("seeding %d appointments", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		userID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
		doctorID := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]

		start := time.Now().
			AddDate(0, 0, gofakeit.Number(1, 30)).
			Truncate(time.Hour).
			Add(time.Duration(gofakeit.Number(8, 17)) * time.Hour)
		end := start.Add(time.Duration(gofakeit.Number(1, 4)) * 15 * time.Minute)

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (user_id, doctor_id, start_time, end_time, created_at)
			VALUES ($1, $2, $3, $4, now())
		`, userID, doctorID, start, end)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}
