package entities

import "time"

// Loan links one book copy to one member for a date range. A nil return
// date means the loan is still open.
type Loan struct {
	ID         uint       `gorm:"column:id_emprunt;primaryKey" json:"id_emprunt"`
	BookID     uint       `gorm:"column:livre_id" json:"livre_id"`
	MemberID   uint       `gorm:"column:membre_id" json:"membre_id"`
	LoanDate   time.Time  `gorm:"column:date_emprunt;type:date" json:"date_emprunt"`
	ReturnDate *time.Time `gorm:"column:date_retour;type:date" json:"date_retour,omitempty"`
	Book       Book       `gorm:"foreignKey:BookID" json:"-"`
	Member     Member     `gorm:"foreignKey:MemberID" json:"-"`
}

func (Loan) TableName() string {
	return "emprunt"
}
