// Package main seeds a showcase database with demo accounts, favorites and
// copy counts so the API and the terminal client have something to show.
//
// Usage:
//
//	DATA_PATH=~/Showcase/data go run ./cmd/seed
//	DATA_PATH=~/Showcase/data go run ./cmd/seed --users 5 --copies 500
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/aishort/showcase-server/internal/auth"
	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/id"
	"github.com/aishort/showcase-server/internal/store"
)

var (
	users       = flag.Int("users", 3, "Number of demo users to create")
	favorites   = flag.Int("favorites", 5, "Favorites per demo user")
	copies      = flag.Int("copies", 200, "Copy events to spread over the catalog")
	password    = flag.String("password", "showcase-demo", "Password for every demo user")
	catalogPath = flag.String("catalog", "", "Catalog file (default: embedded)")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Showcase/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	source, err := catalog.NewSource(*catalogPath, nil)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	entries := source.Current().Entries()
	if len(entries) == 0 {
		log.Fatal("Catalog is empty, nothing to seed.")
	}

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	for n := 1; n <= *users; n++ {
		user, err := createDemoUser(ctx, s, n, hash)
		if errors.Is(err, store.ErrEmailExists) {
			fmt.Printf("  demo%d@example.com already exists, skipping\n", n)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}

		for _, i := range rng.Perm(len(entries))[:min(*favorites, len(entries))] {
			if _, err := s.AddFavorite(ctx, user.ID, entries[i].ID); err != nil {
				log.Fatalf("Failed to add favorite: %v", err)
			}
		}
		fmt.Printf("  created %s with %d favorites\n", user.Email, min(*favorites, len(entries)))
	}

	// Weight the copies toward entries with a higher weight so the counts look plausible.
	var total int
	for _, e := range entries {
		total += max(e.Weight, 1)
	}
	for range *copies {
		pick := rng.IntN(total)
		for _, e := range entries {
			pick -= max(e.Weight, 1)
			if pick < 0 {
				if _, err := s.IncrementCopyCount(ctx, e.ID); err != nil {
					log.Fatalf("Failed to record copy: %v", err)
				}
				break
			}
		}
	}

	counts, err := s.CopyCounts(ctx)
	if err != nil {
		log.Fatalf("Failed to read copy counts: %v", err)
	}
	fmt.Printf("\nDone: %d copies spread across %d entries\n", *copies, len(counts))
}

func createDemoUser(ctx context.Context, s *store.Store, n int, passwordHash string) (*domain.User, error) {
	userID, err := id.NewUserID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        fmt.Sprintf("demo%d@example.com", n),
		PasswordHash: passwordHash,
		DisplayName:  fmt.Sprintf("Demo %d", n),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
