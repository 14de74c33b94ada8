package entities

import "time"

type Member struct {
	ID        uint       `gorm:"column:id_mbre;primaryKey" json:"id_mbre"`
	LastName  string     `gorm:"column:nom_mbre;size:100" json:"nom_mbre"`
	FirstName string     `gorm:"column:prenom_mbre;size:100" json:"prenom_mbre"`
	Email     string     `gorm:"column:email_mbre;size:100" json:"email_mbre"`
	JoinDate  *time.Time `gorm:"column:date_adhesion;type:date" json:"date_adhesion,omitempty"`
}

// Profile is a named role attached to an account. Roles are stored but not
// enforced against any endpoint.
type Profile struct {
	ID          uint   `gorm:"column:id_profil;primaryKey" json:"id_profil"`
	Name        string `gorm:"column:nom_p;size:100;not null" json:"nom_p"`
	Description string `gorm:"column:description_p;size:255" json:"description_p"`
}

// Account is a login for the service. Password holds a bcrypt hash and is
// never serialized. The member link is optional: staff accounts have none.
type Account struct {
	ID        uint    `gorm:"column:id_user;primaryKey" json:"id_user"`
	Login     string  `gorm:"column:login;size:100" json:"login"`
	Password  string  `gorm:"column:password;size:255" json:"-"`
	ProfileID uint    `gorm:"column:profil_id" json:"profil_id"`
	MemberID  *uint   `gorm:"column:mbre_id" json:"mbre_id"`
	Profile   Profile `gorm:"foreignKey:ProfileID" json:"profil,omitempty"`
	Member    *Member `gorm:"foreignKey:MemberID" json:"membre,omitempty"`
}

func (Member) TableName() string {
	return "membre"
}

func (Profile) TableName() string {
	return "profil"
}

func (Account) TableName() string {
	return "utilisateur"
}
