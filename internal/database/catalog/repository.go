// Package catalog provides database operations for categories, authors and
// books, including the livre_auteur join table.
//
// The author set of a book is always replaced wholesale: callers pass the
// full membership and the join rows are rewritten inside the same
// transaction as the book row.
package catalog

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- Categories ---

// ListCategories returns all categories, newest first.
func (r *Repository) ListCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("id_cat DESC").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetCategoryByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(category *entities.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) SaveCategory(category *entities.Category) error {
	return r.db.Save(category).Error
}

func (r *Repository) DeleteCategory(id uint) error {
	return r.db.Delete(&entities.Category{}, id).Error
}

// --- Authors ---

// ListAuthors returns all authors, newest first.
func (r *Repository) ListAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id_auteur DESC").Find(&authors).Error
	return authors, err
}

func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// FindAuthorsByIDs returns the authors whose ids exist. Callers compare the
// result against the requested ids to report missing ones.
func (r *Repository) FindAuthorsByIDs(ids []uint) ([]entities.Author, error) {
	var authors []entities.Author
	if len(ids) == 0 {
		return authors, nil
	}
	err := r.db.Where("id_auteur IN ?", ids).Find(&authors).Error
	return authors, err
}

func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

func (r *Repository) SaveAuthor(author *entities.Author) error {
	return r.db.Save(author).Error
}

func (r *Repository) DeleteAuthor(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// --- Books ---

// ListBooks returns books with category and authors preloaded, newest
// first. A non-zero categoryID filters by category. A non-empty search term
// matches title, isbn or either author name field, case-insensitively; the
// author join requires deduplication.
func (r *Repository) ListBooks(categoryID uint, search string) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{}).Preload("Category").Preload("Authors")

	if categoryID != 0 {
		query = query.Where("livre.cat_id = ?", categoryID)
	}

	if search != "" {
		like := "%" + search + "%"
		query = query.
			Distinct("livre.*").
			Joins("LEFT JOIN livre_auteur ON livre_auteur.livre_id = livre.id_livre").
			Joins("LEFT JOIN auteur ON auteur.id_auteur = livre_auteur.auteur_id").
			Where(
				"LOWER(livre.titre) LIKE LOWER(?) OR LOWER(livre.isbn) LIKE LOWER(?) OR LOWER(auteur.nom_auteur) LIKE LOWER(?) OR LOWER(auteur.prenom_auteur) LIKE LOWER(?)",
				like, like, like, like,
			)
	}

	var books []entities.Book
	err := query.Order("livre.id_livre DESC").Find(&books).Error
	return books, err
}

func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.Preload("Category").Preload("Authors").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts the book row and its author links in one transaction.
// The ids must already be validated; a foreign-key or uniqueness violation
// rolls the whole insert back.
func (r *Repository) CreateBook(book *entities.Book, authorIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(book).Error; err != nil {
			return err
		}
		return replaceBookAuthors(tx, book.ID, authorIDs)
	})
}

// UpdateBook saves the modified book row. When replaceAuthors is set the
// author membership is rewritten to exactly authorIDs in the same
// transaction.
func (r *Repository) UpdateBook(book *entities.Book, authorIDs []uint, replaceAuthors bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			return err
		}
		if replaceAuthors {
			return replaceBookAuthors(tx, book.ID, authorIDs)
		}
		return nil
	})
}

// DeleteBook removes the book and its author links. Loans referencing the
// book are left alone.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM livre_auteur WHERE livre_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}

func replaceBookAuthors(tx *gorm.DB, bookID uint, authorIDs []uint) error {
	if err := tx.Exec("DELETE FROM livre_auteur WHERE livre_id = ?", bookID).Error; err != nil {
		return err
	}
	for _, authorID := range authorIDs {
		if err := tx.Exec(
			"INSERT INTO livre_auteur (livre_id, auteur_id) VALUES (?, ?)",
			bookID, authorID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
