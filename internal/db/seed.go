package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedGenres = []string{"Pop", "Rock", "Hip-Hop", "Indie", "Electronic"}

// SeedTestData resets the database and populates it with demo users,
// swipes, and the matches/conversations implied by mutual likes.
//
// Behavior:
//  1. Clears all tables.
//  2. Creates 20 students (10 male, 10 female) with genre tags.
//  3. Generates ~200 swipes with ~70% likes; every 3rd ensures a
//     reciprocal like, and the matching Match/Conversation rows are
//     written the way the resolver would write them.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "conversations", "matches", "swipe_receipts", "swipes", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE swipes AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE matches AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE messages AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('swipes', 'matches', 'messages')")
	}

	log.Println("Cleared existing data")

	// --- Seed Users (10 male, 10 female) ---
	users := make([]User, 0, 20)
	for i := 1; i <= 20; i++ {
		gender := "male"
		if i > 10 {
			gender = "female"
		}

		user := User{
			ID:             uuid.NewString(),
			Email:          fmt.Sprintf("student%d@bennett.edu.in", i),
			Name:           fmt.Sprintf("Student %d", i),
			Age:            18 + r.Intn(7),
			Gender:         gender,
			Location:       "Greater Noida",
			MusicalGenre:   seedGenres[r.Intn(len(seedGenres))],
			Active:         true,
			EmailConfirmed: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Println("Seeded 20 users.")

	// --- Seed Swipes (~200), with guaranteed mutual likes every 3rd pair ---
	counter := 0
	for i := range users {
		for j := 0; j < 12; j++ {
			target := users[r.Intn(len(users))]
			if target.ID == users[i].ID || target.Gender == users[i].Gender {
				continue
			}

			direction := DirectionSkip
			if r.Intn(100) < 70 {
				direction = DirectionLike
			}

			songID := fmt.Sprintf("track-%d", r.Intn(40)+1)

			if counter%3 == 0 {
				direction = DirectionLike
				// reciprocal like on the same song, plus the resulting match
				recip := Swipe{
					SwiperID:  target.ID,
					SwipedID:  users[i].ID,
					SongID:    songID,
					Direction: DirectionLike,
				}
				if err := db.Create(&recip).Error; err != nil {
					return fmt.Errorf("failed to seed reciprocal swipe: %w", err)
				}

				u1, u2 := users[i].ID, target.ID
				if u2 < u1 {
					u1, u2 = u2, u1
				}
				match := Match{User1ID: u1, User2ID: u2, SongID: songID, Score: 100}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&match).Error; err != nil {
					return fmt.Errorf("failed to seed match: %w", err)
				}
				conv := Conversation{ID: uuid.NewString(), User1ID: u1, User2ID: u2}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&conv).Error; err != nil {
					return fmt.Errorf("failed to seed conversation: %w", err)
				}
			}

			swipe := Swipe{
				SwiperID:  users[i].ID,
				SwipedID:  target.ID,
				SongID:    songID,
				Direction: direction,
			}
			if err := db.Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			counter++
		}
	}

	return nil
}
