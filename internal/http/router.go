package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/audit"
	"github.com/mrlokans/bibliotheque/internal/database"
	"github.com/mrlokans/bibliotheque/internal/database/catalog"
	"github.com/mrlokans/bibliotheque/internal/database/loans"
	"github.com/mrlokans/bibliotheque/internal/database/users"
)

// RouterConfig carries all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Database *database.Database
	Catalog  *catalog.Repository
	Loans    *loans.Repository
	Users    *users.Repository
	Auditor  *audit.Auditor
	// BcryptCost is the work factor for password hashing.
	BcryptCost int
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Route groups mirror the service areas: /api/books for the catalog,
// /api/loans for loan management, /api/users for members and accounts.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api := router.Group("/api")

	// The frontend is served from another origin; the whole API is open.
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	health := NewHealthController(cfg.Database, cfg.Version)
	categoriesController := NewCategoriesController(cfg.Catalog)
	authorsController := NewAuthorsController(cfg.Catalog)
	booksController := NewBooksController(cfg.Catalog)
	loansController := NewLoansController(cfg.Loans, cfg.Catalog, cfg.Users, cfg.Auditor)
	profilesController := NewProfilesController(cfg.Users)
	membersController := NewMembersController(cfg.Users)
	accountsController := NewAccountsController(cfg.Users, cfg.Users, cfg.Users, cfg.BcryptCost, cfg.Auditor)

	api.GET("/health", health.Status)

	booksGroup := api.Group("/books")
	{
		booksGroup.GET("/categories", categoriesController.ListCategories)
		booksGroup.POST("/categories", categoriesController.CreateCategory)
		booksGroup.PUT("/categories/:id", categoriesController.UpdateCategory)
		booksGroup.DELETE("/categories/:id", categoriesController.DeleteCategory)

		booksGroup.GET("/authors", authorsController.ListAuthors)
		booksGroup.POST("/authors", authorsController.CreateAuthor)
		booksGroup.PUT("/authors/:id", authorsController.UpdateAuthor)
		booksGroup.DELETE("/authors/:id", authorsController.DeleteAuthor)

		booksGroup.GET("/books", booksController.ListBooks)
		booksGroup.GET("/books/:id", booksController.GetBook)
		booksGroup.POST("/books", booksController.CreateBook)
		booksGroup.PUT("/books/:id", booksController.UpdateBook)
		booksGroup.DELETE("/books/:id", booksController.DeleteBook)
	}

	loansGroup := api.Group("/loans")
	{
		loansGroup.GET("/", loansController.ListLoans)
		loansGroup.POST("/", loansController.CreateLoan)
		loansGroup.PUT("/:id", loansController.UpdateLoan)
	}

	usersGroup := api.Group("/users")
	{
		usersGroup.GET("/profils", profilesController.ListProfiles)
		usersGroup.POST("/profils", profilesController.CreateProfile)
		usersGroup.PUT("/profils/:id", profilesController.UpdateProfile)
		usersGroup.DELETE("/profils/:id", profilesController.DeleteProfile)

		usersGroup.GET("/members", membersController.ListMembers)
		usersGroup.GET("/members/:id", membersController.GetMember)
		usersGroup.POST("/members", membersController.CreateMember)
		usersGroup.PUT("/members/:id", membersController.UpdateMember)
		usersGroup.DELETE("/members/:id", membersController.DeleteMember)

		usersGroup.GET("/accounts", accountsController.ListAccounts)
		usersGroup.POST("/accounts", accountsController.CreateAccount)
		usersGroup.PUT("/accounts/:id", accountsController.UpdateAccount)
		usersGroup.DELETE("/accounts/:id", accountsController.DeleteAccount)

		usersGroup.POST("/login", accountsController.Login)
	}

	return router
}
