// Package loans provides database operations for loan records and the
// stock decrement that accompanies an open loan.
package loans

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// ErrNoStock is returned when a loan would be created against a book with
// no copies left.
var ErrNoStock = errors.New("no quantity available for this book")

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListLoans returns all loans in id order with book and member preloaded.
// A preload against a deleted foreign row yields the zero value; the
// serialization layer turns that into a null snapshot.
func (r *Repository) ListLoans() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Preload("Book").Preload("Member").Order("id_emprunt ASC").Find(&loans).Error
	return loans, err
}

func (r *Repository) GetLoanByID(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	if err := r.db.Preload("Book").Preload("Member").First(&loan, id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

// CreateLoan inserts the loan and, when decrementStock is set, takes one
// copy off the book inside the same transaction. The decrement is
// conditional on remaining stock so that two concurrent creates cannot
// oversubscribe a book: the loser gets ErrNoStock and rolls back.
func (r *Repository) CreateLoan(loan *entities.Loan, decrementStock bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(loan).Error; err != nil {
			return err
		}
		if !decrementStock {
			return nil
		}
		result := tx.Exec(
			"UPDATE livre SET quantite = quantite - 1 WHERE id_livre = ? AND quantite > 0",
			loan.BookID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNoStock
		}
		return nil
	})
}

// SaveLoan persists changes to an existing loan. Stock is never adjusted
// here, whatever happened to the return date or the book id.
func (r *Repository) SaveLoan(loan *entities.Loan) error {
	return r.db.Omit(clause.Associations).Save(loan).Error
}
