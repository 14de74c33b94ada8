// Command seed creates a demo database with a small catalog, a few members
// and an admin account (login: admin, password: admin123).
// Usage: go run cmd/seed/main.go [-db path/to/bibliotheque.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/bibliotheque/internal/auth"
	"github.com/mrlokans/bibliotheque/internal/config"
	"github.com/mrlokans/bibliotheque/internal/database"
	"github.com/mrlokans/bibliotheque/internal/database/catalog"
	"github.com/mrlokans/bibliotheque/internal/database/loans"
	"github.com/mrlokans/bibliotheque/internal/database/users"
	"github.com/mrlokans/bibliotheque/internal/entities"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, database.Options{UniqueLogins: true})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	catalogRepo := catalog.NewRepository(db.DB)
	loansRepo := loans.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)

	categories := []*entities.Category{
		{Name: "Science-fiction", Field: "Litterature"},
		{Name: "Informatique", Field: "Sciences"},
		{Name: "Histoire", Field: "Sciences humaines"},
	}
	for _, c := range categories {
		if err := catalogRepo.CreateCategory(c); err != nil {
			log.Fatalf("Failed to create category %s: %v", c.Name, err)
		}
	}

	authors := []*entities.Author{
		{LastName: "Herbert", FirstName: "Frank"},
		{LastName: "Asimov", FirstName: "Isaac"},
		{LastName: "Kernighan", FirstName: "Brian"},
		{LastName: "Ritchie", FirstName: "Dennis"},
	}
	for _, a := range authors {
		if err := catalogRepo.CreateAuthor(a); err != nil {
			log.Fatalf("Failed to create author %s: %v", a.LastName, err)
		}
	}

	books := []struct {
		book      entities.Book
		authorIDs []uint
	}{
		{
			book:      entities.Book{Title: "Dune", ISBN: "9780441013593", Quantity: 3, CategoryID: categories[0].ID},
			authorIDs: []uint{authors[0].ID},
		},
		{
			book:      entities.Book{Title: "Foundation", ISBN: "9780553293357", Quantity: 2, CategoryID: categories[0].ID},
			authorIDs: []uint{authors[1].ID},
		},
		{
			book:      entities.Book{Title: "The C Programming Language", ISBN: "9780131103627", Quantity: 1, CategoryID: categories[1].ID},
			authorIDs: []uint{authors[2].ID, authors[3].ID},
		},
	}
	for i := range books {
		if err := catalogRepo.CreateBook(&books[i].book, books[i].authorIDs); err != nil {
			log.Fatalf("Failed to create book %s: %v", books[i].book.Title, err)
		}
		log.Printf("Saved: %s (%d authors)", books[i].book.Title, len(books[i].authorIDs))
	}

	joined := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	members := []*entities.Member{
		{LastName: "Martin", FirstName: "Claire", Email: "claire.martin@example.org", JoinDate: &joined},
		{LastName: "Dupont", FirstName: "Louis", Email: "louis.dupont@example.org"},
	}
	for _, m := range members {
		if err := usersRepo.CreateMember(m); err != nil {
			log.Fatalf("Failed to create member %s: %v", m.LastName, err)
		}
	}

	adminProfile := &entities.Profile{Name: "admin", Description: "Full access"}
	if err := usersRepo.CreateProfile(adminProfile); err != nil {
		log.Fatalf("Failed to create profile: %v", err)
	}

	hashed, err := auth.HashPassword("admin123", 12)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := &entities.Account{Login: "admin", Password: hashed, ProfileID: adminProfile.ID}
	if err := usersRepo.CreateAccount(admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	// One open loan (decrements Dune's stock) and one already returned.
	open := &entities.Loan{
		BookID:   books[0].book.ID,
		MemberID: members[0].ID,
		LoanDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := loansRepo.CreateLoan(open, true); err != nil {
		log.Fatalf("Failed to create open loan: %v", err)
	}
	returned := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	closed := &entities.Loan{
		BookID:     books[1].book.ID,
		MemberID:   members[1].ID,
		LoanDate:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		ReturnDate: &returned,
	}
	if err := loansRepo.CreateLoan(closed, false); err != nil {
		log.Fatalf("Failed to create closed loan: %v", err)
	}

	log.Printf("Demo database ready: %d categories, %d authors, %d books, %d members", len(categories), len(authors), len(books), len(members))
}
