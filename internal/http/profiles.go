package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// ProfileStore defines database operations for profiles (account roles).
type ProfileStore interface {
	ListProfiles() ([]entities.Profile, error)
	GetProfileByID(id uint) (*entities.Profile, error)
	CreateProfile(profile *entities.Profile) error
	SaveProfile(profile *entities.Profile) error
	DeleteProfile(id uint) error
}

type ProfilesController struct {
	store ProfileStore
}

func NewProfilesController(store ProfileStore) *ProfilesController {
	return &ProfilesController{store: store}
}

func serializeProfile(p *entities.Profile) gin.H {
	return gin.H{
		"id_profil":     p.ID,
		"nom_p":         p.Name,
		"description_p": p.Description,
	}
}

// ListProfiles returns all profiles, newest first
// GET /api/users/profils
func (pc *ProfilesController) ListProfiles(c *gin.Context) {
	profiles, err := pc.store.ListProfiles()
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		payload = append(payload, serializeProfile(&profiles[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// CreateProfile creates a new profile
// POST /api/users/profils
func (pc *ProfilesController) CreateProfile(c *gin.Context) {
	var req struct {
		Name        string `json:"nom_p"`
		Description string `json:"description_p"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		respondBadRequest(c, "nom_p is required")
		return
	}

	profile := &entities.Profile{Name: req.Name, Description: req.Description}
	if err := pc.store.CreateProfile(profile); err != nil {
		respondServerError(c, err)
		return
	}

	respondCreated(c, serializeProfile(profile))
}

// UpdateProfile replaces any subset of fields present in the body; the
// name may not be blanked out
// PUT /api/users/profils/:id
func (pc *ProfilesController) UpdateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := pc.store.GetProfileByID(id)
	if err != nil {
		respondNotFound(c, "profile")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	if raw, present := body["nom_p"]; present {
		name, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "nom_p must be a string")
			return
		}
		if name == "" {
			respondBadRequest(c, "nom_p cannot be empty")
			return
		}
		profile.Name = name
	}
	if raw, present := body["description_p"]; present {
		description, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "description_p must be a string")
			return
		}
		profile.Description = description
	}

	if err := pc.store.SaveProfile(profile); err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeProfile(profile))
}

// DeleteProfile removes a profile
// DELETE /api/users/profils/:id
func (pc *ProfilesController) DeleteProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := pc.store.GetProfileByID(id); err != nil {
		respondNotFound(c, "profile")
		return
	}

	if err := pc.store.DeleteProfile(id); err != nil {
		respondServerError(c, err)
		return
	}

	respondDeleted(c)
}
