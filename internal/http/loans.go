package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/audit"
	"github.com/mrlokans/bibliotheque/internal/database/loans"
	"github.com/mrlokans/bibliotheque/internal/entities"
)

// LoanStore defines database operations for loan management.
type LoanStore interface {
	ListLoans() ([]entities.Loan, error)
	GetLoanByID(id uint) (*entities.Loan, error)
	CreateLoan(loan *entities.Loan, decrementStock bool) error
	SaveLoan(loan *entities.Loan) error
}

// BookLookup resolves book ids during loan validation.
type BookLookup interface {
	GetBookByID(id uint) (*entities.Book, error)
}

// MemberLookup resolves member ids during loan validation.
type MemberLookup interface {
	GetMemberByID(id uint) (*entities.Member, error)
}

type LoansController struct {
	store   LoanStore
	books   BookLookup
	members MemberLookup
	auditor *audit.Auditor
}

func NewLoansController(store LoanStore, books BookLookup, members MemberLookup, auditor *audit.Auditor) *LoansController {
	return &LoansController{store: store, books: books, members: members, auditor: auditor}
}

// serializeLoan embeds a snapshot of the book and member rows. Either
// snapshot is null when the foreign row was deleted after the loan was
// created.
func serializeLoan(l *entities.Loan) gin.H {
	var book any
	if l.Book.ID != 0 {
		book = gin.H{
			"id_livre": l.Book.ID,
			"titre":    l.Book.Title,
			"isbn":     l.Book.ISBN,
		}
	}

	var member any
	if l.Member.ID != 0 {
		member = gin.H{
			"id_mbre":     l.Member.ID,
			"nom_mbre":    l.Member.LastName,
			"prenom_mbre": l.Member.FirstName,
			"email_mbre":  l.Member.Email,
		}
	}

	return gin.H{
		"id_emprunt":   l.ID,
		"livre_id":     l.BookID,
		"membre_id":    l.MemberID,
		"date_emprunt": formatDate(&l.LoanDate),
		"date_retour":  formatDate(l.ReturnDate),
		"livre":        book,
		"membre":       member,
	}
}

// ListLoans returns all loans in id order
// GET /api/loans/
func (lc *LoansController) ListLoans(c *gin.Context) {
	allLoans, err := lc.store.ListLoans()
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(allLoans))
	for i := range allLoans {
		payload = append(payload, serializeLoan(&allLoans[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// CreateLoan records a loan. When no return date is supplied the loan is
// open and one copy is taken off the book's stock in the same transaction;
// a loan recorded as already closed leaves stock untouched.
// POST /api/loans/
func (lc *LoansController) CreateLoan(c *gin.Context) {
	var req struct {
		BookID     *uint   `json:"livre_id"`
		MemberID   *uint   `json:"membre_id"`
		LoanDate   *string `json:"date_emprunt"`
		ReturnDate *string `json:"date_retour"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid format (integer id, date YYYY-MM-DD)")
		return
	}

	lc.auditor.Record("loan_create", req)

	if req.BookID == nil || req.MemberID == nil || req.LoanDate == nil {
		respondBadRequestDetails(c, "required fields are missing", gin.H{
			"required": []string{"livre_id", "membre_id", "date_emprunt"},
		})
		return
	}

	loanDate, err := parseDate(*req.LoanDate)
	if err != nil {
		respondBadRequest(c, "invalid format (integer id, date YYYY-MM-DD)")
		return
	}
	if loanDate == nil {
		respondBadRequest(c, "date_emprunt is required")
		return
	}

	var returnDate *time.Time
	if req.ReturnDate != nil {
		returnDate, err = parseDate(*req.ReturnDate)
		if err != nil {
			respondBadRequest(c, "invalid format (integer id, date YYYY-MM-DD)")
			return
		}
	}

	book, err := lc.books.GetBookByID(*req.BookID)
	if err != nil {
		respondBadRequest(c, "livre_id does not exist")
		return
	}
	if _, err := lc.members.GetMemberByID(*req.MemberID); err != nil {
		respondBadRequest(c, "membre_id does not exist")
		return
	}
	if book.Quantity <= 0 {
		respondBadRequest(c, "no quantity available for this book")
		return
	}

	loan := &entities.Loan{
		BookID:     *req.BookID,
		MemberID:   *req.MemberID,
		LoanDate:   *loanDate,
		ReturnDate: returnDate,
	}
	if err := lc.store.CreateLoan(loan, returnDate == nil); err != nil {
		switch {
		case errors.Is(err, loans.ErrNoStock):
			respondBadRequest(c, "no quantity available for this book")
		case isConstraintViolation(err):
			respondConstraintViolation(c, err)
		default:
			respondServerError(c, err)
		}
		return
	}

	created, err := lc.store.GetLoanByID(loan.ID)
	if err != nil {
		respondServerError(c, err)
		return
	}
	respondCreated(c, serializeLoan(created))
}

// UpdateLoan changes any of the loan fields present in the body. Stock is
// never adjusted here, however the return date or book id changes; that
// asymmetry with create is deliberate.
// PUT /api/loans/:id
func (lc *LoansController) UpdateLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := lc.store.GetLoanByID(id)
	if err != nil {
		respondNotFound(c, "loan")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	lc.auditor.Record("loan_update", body)

	if raw, present := body["livre_id"]; present {
		bookID, err := asUintPtr(raw)
		if err != nil {
			respondBadRequest(c, "invalid id or date (YYYY-MM-DD)")
			return
		}
		if bookID == nil {
			respondBadRequest(c, "livre_id does not exist")
			return
		}
		if _, err := lc.books.GetBookByID(*bookID); err != nil {
			respondBadRequest(c, "livre_id does not exist")
			return
		}
		loan.BookID = *bookID
	}

	if raw, present := body["membre_id"]; present {
		memberID, err := asUintPtr(raw)
		if err != nil {
			respondBadRequest(c, "invalid id or date (YYYY-MM-DD)")
			return
		}
		if memberID == nil {
			respondBadRequest(c, "membre_id does not exist")
			return
		}
		if _, err := lc.members.GetMemberByID(*memberID); err != nil {
			respondBadRequest(c, "membre_id does not exist")
			return
		}
		loan.MemberID = *memberID
	}

	if raw, present := body["date_emprunt"]; present {
		value, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "invalid id or date (YYYY-MM-DD)")
			return
		}
		loanDate, err := parseDate(value)
		if err != nil {
			respondBadRequest(c, "invalid id or date (YYYY-MM-DD)")
			return
		}
		if loanDate == nil {
			respondBadRequest(c, "date_emprunt cannot be empty")
			return
		}
		loan.LoanDate = *loanDate
	}

	if raw, present := body["date_retour"]; present {
		value, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "invalid id or date (YYYY-MM-DD)")
			return
		}
		returnDate, err := parseDate(value)
		if err != nil {
			respondBadRequest(c, "invalid id or date (YYYY-MM-DD)")
			return
		}
		// An explicit null or empty value clears the return date.
		loan.ReturnDate = returnDate
	}

	if err := lc.store.SaveLoan(loan); err != nil {
		if isConstraintViolation(err) {
			respondConstraintViolation(c, err)
			return
		}
		respondServerError(c, err)
		return
	}

	updated, err := lc.store.GetLoanByID(loan.ID)
	if err != nil {
		respondServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeLoan(updated))
}
