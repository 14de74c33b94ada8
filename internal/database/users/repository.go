// Package users provides database operations for profiles, members and
// accounts.
package users

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// Repository handles all profile, member and account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- Profiles ---

// ListProfiles returns all profiles, newest first.
func (r *Repository) ListProfiles() ([]entities.Profile, error) {
	var profiles []entities.Profile
	err := r.db.Order("id_profil DESC").Find(&profiles).Error
	return profiles, err
}

func (r *Repository) GetProfileByID(id uint) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) CreateProfile(profile *entities.Profile) error {
	return r.db.Create(profile).Error
}

func (r *Repository) SaveProfile(profile *entities.Profile) error {
	return r.db.Save(profile).Error
}

func (r *Repository) DeleteProfile(id uint) error {
	return r.db.Delete(&entities.Profile{}, id).Error
}

// --- Members ---

// ListMembers returns all members, newest first.
func (r *Repository) ListMembers() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Order("id_mbre DESC").Find(&members).Error
	return members, err
}

func (r *Repository) GetMemberByID(id uint) (*entities.Member, error) {
	var member entities.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *Repository) CreateMember(member *entities.Member) error {
	return r.db.Create(member).Error
}

func (r *Repository) SaveMember(member *entities.Member) error {
	return r.db.Save(member).Error
}

func (r *Repository) DeleteMember(id uint) error {
	return r.db.Delete(&entities.Member{}, id).Error
}

// --- Accounts ---

// ListAccounts returns all accounts with profile and member preloaded,
// newest first.
func (r *Repository) ListAccounts() ([]entities.Account, error) {
	var accounts []entities.Account
	err := r.db.Preload("Profile").Preload("Member").Order("id_user DESC").Find(&accounts).Error
	return accounts, err
}

func (r *Repository) GetAccountByID(id uint) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.Preload("Profile").Preload("Member").First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByLogin looks an account up by its login, used by the login
// endpoint. Returns gorm.ErrRecordNotFound when the login is unknown.
func (r *Repository) GetAccountByLogin(login string) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.Preload("Profile").Preload("Member").Where("login = ?", login).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) CreateAccount(account *entities.Account) error {
	return r.db.Omit(clause.Associations).Create(account).Error
}

func (r *Repository) SaveAccount(account *entities.Account) error {
	return r.db.Omit(clause.Associations).Save(account).Error
}

func (r *Repository) DeleteAccount(id uint) error {
	return r.db.Delete(&entities.Account{}, id).Error
}
