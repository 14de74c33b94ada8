package entities

// Category groups books by subject area. The legacy schema calls the
// optional discipline column "champ".
type Category struct {
	ID    uint   `gorm:"column:id_cat;primaryKey" json:"id_cat"`
	Name  string `gorm:"column:nom_cat;size:100;not null" json:"nom_cat"`
	Field string `gorm:"column:champ;size:100" json:"champ"`
}

type Author struct {
	ID        uint   `gorm:"column:id_auteur;primaryKey" json:"id_auteur"`
	LastName  string `gorm:"column:nom_auteur;size:100" json:"nom_auteur"`
	FirstName string `gorm:"column:prenom_auteur;size:100" json:"prenom_auteur"`
}

// Book belongs to one category and to any number of authors through the
// livre_auteur join table. Quantity is the number of copies currently
// available for loan.
type Book struct {
	ID         uint     `gorm:"column:id_livre;primaryKey" json:"id_livre"`
	ISBN       string   `gorm:"column:isbn;size:20" json:"isbn"`
	Title      string   `gorm:"column:titre;size:255" json:"titre"`
	Quantity   int      `gorm:"column:quantite" json:"quantite"`
	CategoryID uint     `gorm:"column:cat_id" json:"cat_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"categorie,omitempty"`
	Authors    []Author `gorm:"many2many:livre_auteur;joinForeignKey:livre_id;joinReferences:auteur_id" json:"auteurs,omitempty"`
}

func (Category) TableName() string {
	return "categorie"
}

func (Author) TableName() string {
	return "auteur"
}

func (Book) TableName() string {
	return "livre"
}
