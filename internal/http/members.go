package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/entities"
)

// MemberStore defines database operations for library members.
type MemberStore interface {
	ListMembers() ([]entities.Member, error)
	GetMemberByID(id uint) (*entities.Member, error)
	CreateMember(member *entities.Member) error
	SaveMember(member *entities.Member) error
	DeleteMember(id uint) error
}

type MembersController struct {
	store MemberStore
}

func NewMembersController(store MemberStore) *MembersController {
	return &MembersController{store: store}
}

func serializeMember(m *entities.Member) gin.H {
	return gin.H{
		"id_mbre":       m.ID,
		"nom_mbre":      m.LastName,
		"prenom_mbre":   m.FirstName,
		"email_mbre":    m.Email,
		"date_adhesion": formatDate(m.JoinDate),
	}
}

// ListMembers returns all members, newest first
// GET /api/users/members
func (mc *MembersController) ListMembers(c *gin.Context) {
	members, err := mc.store.ListMembers()
	if err != nil {
		respondServerError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(members))
	for i := range members {
		payload = append(payload, serializeMember(&members[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// GetMember returns a single member
// GET /api/users/members/:id
func (mc *MembersController) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := mc.store.GetMemberByID(id)
	if err != nil {
		respondNotFound(c, "member")
		return
	}

	c.JSON(http.StatusOK, serializeMember(member))
}

// CreateMember creates a member; the join date is optional
// POST /api/users/members
func (mc *MembersController) CreateMember(c *gin.Context) {
	var req struct {
		LastName  string `json:"nom_mbre"`
		FirstName string `json:"prenom_mbre"`
		Email     string `json:"email_mbre"`
		JoinDate  string `json:"date_adhesion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.LastName == "" || req.FirstName == "" || req.Email == "" {
		respondBadRequest(c, "nom_mbre, prenom_mbre, email_mbre are required")
		return
	}

	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		respondBadRequest(c, "date_adhesion must be YYYY-MM-DD")
		return
	}

	member := &entities.Member{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		JoinDate:  joinDate,
	}
	if err := mc.store.CreateMember(member); err != nil {
		respondServerError(c, err)
		return
	}

	respondCreated(c, serializeMember(member))
}

// UpdateMember replaces any subset of fields present in the body; sending
// an empty or null date_adhesion clears it
// PUT /api/users/members/:id
func (mc *MembersController) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := mc.store.GetMemberByID(id)
	if err != nil {
		respondNotFound(c, "member")
		return
	}

	body, ok := bindPartial(c)
	if !ok {
		return
	}

	if raw, present := body["nom_mbre"]; present {
		lastName, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "nom_mbre must be a string")
			return
		}
		member.LastName = lastName
	}
	if raw, present := body["prenom_mbre"]; present {
		firstName, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "prenom_mbre must be a string")
			return
		}
		member.FirstName = firstName
	}
	if raw, present := body["email_mbre"]; present {
		email, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "email_mbre must be a string")
			return
		}
		member.Email = email
	}
	if raw, present := body["date_adhesion"]; present {
		value, err := asString(raw)
		if err != nil {
			respondBadRequest(c, "date_adhesion must be YYYY-MM-DD")
			return
		}
		joinDate, err := parseDate(value)
		if err != nil {
			respondBadRequest(c, "date_adhesion must be YYYY-MM-DD")
			return
		}
		member.JoinDate = joinDate
	}

	if err := mc.store.SaveMember(member); err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeMember(member))
}

// DeleteMember removes a member
// DELETE /api/users/members/:id
func (mc *MembersController) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := mc.store.GetMemberByID(id); err != nil {
		respondNotFound(c, "member")
		return
	}

	if err := mc.store.DeleteMember(id); err != nil {
		respondServerError(c, err)
		return
	}

	respondDeleted(c)
}
