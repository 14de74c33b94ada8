package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/audit"
	"github.com/mrlokans/bibliotheque/internal/auth"
	"github.com/mrlokans/bibliotheque/internal/entities"
)

// AccountStore defines database operations for user accounts.
type AccountStore interface {
	ListAccounts() ([]entities.Account, error)
	GetAccountByID(id uint) (*entities.Account, error)
	GetAccountByLogin(login string) (*entities.Account, error)
	CreateAccount(account *entities.Account) error
	SaveAccount(account *entities.Account) error
	DeleteAccount(id uint) error
}

// ProfileLookup resolves profile ids during account validation.
type ProfileLookup interface {
	GetProfileByID(id uint) (*entities.Profile, error)
}

type AccountsController struct {
	store      AccountStore
	profiles   ProfileLookup
	members    MemberLookup
	bcryptCost int
	auditor    *audit.Auditor
}

func NewAccountsController(store AccountStore, profiles ProfileLookup, members MemberLookup, bcryptCost int, auditor *audit.Auditor) *AccountsController {
	return &AccountsController{
		store:      store,
		profiles:   profiles,
		members:    members,
		bcryptCost: bcryptCost,
		auditor:    auditor,
	}
}

// serializeAccount never includes the password hash.
func serializeAccount(a *entities.Account) gin.H {
	var profile any
	if a.Profile.ID != 0 {
		profile = serializeProfile(&a.Profile)
	}

	var member any
	if a.Member != nil && a.Member.ID != 0 {
		member = serializeMember(a.Member)
	}

	return gin.H{
		"id_user":   a.ID,
		"login":     a.Login,
		"profil_id": a.ProfileID,
		"mbre_id":   a.MemberID,
		"profil":    profile,
		"membre":    member,
	}
}

// ListAccounts returns all accounts, newest first
// GET /api/users/accounts
func (ac *AccountsController) ListAccounts(c *gin.Context) {
	accounts, err := ac.store.ListAccounts()
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(accounts))
	for i := range accounts {
		payload = append(payload, serializeAccount(&accounts[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// CreateAccount creates an account with a bcrypt-hashed password. The
// profile must exist; the member link is optional but must resolve when
// given.
// POST /api/users/accounts
func (ac *AccountsController) CreateAccount(c *gin.Context) {
	var req struct {
		Login     string `json:"login"`
		Password  string `json:"password"`
		ProfileID *uint  `json:"profil_id"`
		MemberID  *uint  `json:"mbre_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ac.auditor.Record("account_create", gin.H{
		"login":     req.Login,
		"profil_id": req.ProfileID,
		"mbre_id":   req.MemberID,
	})

	if req.Login == "" || req.Password == "" {
		respondBadRequest(c, "login and password are required")
		return
	}
	if req.ProfileID == nil {
		respondBadRequest(c, "profil_id is required")
		return
	}
	if _, err := ac.profiles.GetProfileByID(*req.ProfileID); err != nil {
		respondBadRequest(c, "profil_id does not exist")
		return
	}
	if req.MemberID != nil {
		if _, err := ac.members.GetMemberByID(*req.MemberID); err != nil {
			respondBadRequest(c, "mbre_id does not exist")
			return
		}
	}

	hashed, err := auth.HashPassword(req.Password, ac.bcryptCost)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	account := &entities.Account{
		Login:     req.Login,
		Password:  hashed,
		ProfileID: *req.ProfileID,
		MemberID:  req.MemberID,
	}
	if err := ac.store.CreateAccount(account); err != nil {
		if isConstraintViolation(err) {
			respondConstraintViolation(c, err)
			return
		}
		respondServerError(c, err)
		return
	}

	created, err := ac.store.GetAccountByID(account.ID)
	if err != nil {
		respondServerError(c, err)
		return
	}
	respondCreated(c, serializeAccount(created))
}

// UpdateAccount changes any of login, password, profil_id and mbre_id if
// present in the body. mbre_id may be set to null to unlink the member.
// PUT /api/users/accounts/:id
func (ac *AccountsController) UpdateAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := ac.store.GetAccountByID(id)
	if err != nil {
		respondNotFound(c, "account")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	if raw, present := body["login"]; present {
		login, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "login must be a string")
			return
		}
		if login == "" {
			respondBadRequest(c, "login cannot be empty")
			return
		}
		account.Login = login
	}

	if raw, present := body["password"]; present {
		password, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "password must be a string")
			return
		}
		if password == "" {
			respondBadRequest(c, "password cannot be empty")
			return
		}
		hashed, err := auth.HashPassword(password, ac.bcryptCost)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		account.Password = hashed
	}

	if raw, present := body["profil_id"]; present {
		profileID, err := asUintPtr(raw)
		if err != nil {
			respondBadRequest(c, "profil_id must be an integer")
			return
		}
		if profileID == nil {
			respondBadRequest(c, "profil_id does not exist")
			return
		}
		if _, err := ac.profiles.GetProfileByID(*profileID); err != nil {
			respondBadRequest(c, "profil_id does not exist")
			return
		}
		account.ProfileID = *profileID
	}

	if raw, present := body["mbre_id"]; present {
		memberID, err := asUintPtr(raw)
		if err != nil {
			respondBadRequest(c, "mbre_id must be an integer")
			return
		}
		if memberID != nil {
			if _, err := ac.members.GetMemberByID(*memberID); err != nil {
				respondBadRequest(c, "mbre_id does not exist")
				return
			}
		}
		account.MemberID = memberID
	}

	if err := ac.store.SaveAccount(account); err != nil {
		if isConstraintViolation(err) {
			respondConstraintViolation(c, err)
			return
		}
		respondServerError(c, err)
		return
	}

	updated, err := ac.store.GetAccountByID(account.ID)
	if err != nil {
		respondServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeAccount(updated))
}

// DeleteAccount removes an account
// DELETE /api/users/accounts/:id
func (ac *AccountsController) DeleteAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.store.GetAccountByID(id); err != nil {
		respondNotFound(c, "account")
		return
	}

	if err := ac.store.DeleteAccount(id); err != nil {
		respondServerError(c, err)
		return
	}

	respondDeleted(c)
}

// Login verifies a login/password pair and returns the account. No session
// or token is issued; the caller manages authentication state itself.
// POST /api/users/login
func (ac *AccountsController) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Login == "" || req.Password == "" {
		respondBadRequest(c, "login and password are required")
		return
	}

	account, err := ac.store.GetAccountByLogin(req.Login)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}
	if err := auth.CheckPassword(req.Password, account.Password); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login_ok",
		"user":    serializeAccount(account),
	})
}
