package profile

import "github.com/socialcircles/circles-web/internal/api"

// ErrServer is the message members see when the profile could not be loaded.
const ErrServer = "Server error. Please contact the administrator."

// Status tags what the loader knows about the member's profile.
type Status int

const (
	StatusLoading Status = iota
	StatusComplete
	StatusNeedsSetup
	StatusFailed
	StatusSignedOut
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusComplete:
		return "complete"
	case StatusNeedsSetup:
		return "needs_setup"
	case StatusFailed:
		return "failed"
	case StatusSignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// UserProfile is the member's stored profile. An empty Email means no
// profile is loaded.
type UserProfile struct {
	Email              string `json:"email" form:"email"`
	FirstName          string `json:"first_name" form:"first_name"`
	LastName           string `json:"last_name" form:"last_name"`
	IsAdmin            bool   `json:"is_admin" form:"-"`
	PreferredName      string `json:"preferred_name" form:"preferred_name"`
	Pronouns           string `json:"pronouns" form:"pronouns"`
	PhoneNumber        string `json:"phone_number" form:"phone_number"`
	Address            string `json:"address" form:"address"`
	MaritalStatus      string `json:"marital_status" form:"marital_status"`
	FamilyCircumstance string `json:"family_circumstance" form:"family_circumstance"`
	CommunityStatus    string `json:"community_status" form:"community_status"`
	Interests          string `json:"interests" form:"interests"`
	PersonalIdentity   string `json:"personal_identity" form:"personal_identity"`
	Picture            string `json:"picture" form:"-"`
}

// Empty reports whether no profile is loaded.
func (p UserProfile) Empty() bool {
	return p.Email == ""
}

// DisplayName prefers the preferred name, then the first name.
func (p UserProfile) DisplayName() string {
	switch {
	case p.PreferredName != "":
		return p.PreferredName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.Email
	}
}

// Identity is what the API knows about a signed-in person who has not set
// up a profile yet. It is only used to prefill the profile form.
type Identity struct {
	Name  string
	Email string
}

// State is the read-only snapshot handed to handlers and views.
type State struct {
	Profile  UserProfile
	Identity Identity
	Loading  bool
	Error    string
	Status   Status
}

func fromUserData(u *api.UserData) UserProfile {
	p := UserProfile{
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		PreferredName:      u.PreferredName,
		Pronouns:           u.Pronouns,
		PhoneNumber:        u.PhoneNumber,
		Address:            u.Address,
		MaritalStatus:      u.MaritalStatus,
		FamilyCircumstance: u.FamilyCircumstance,
		CommunityStatus:    u.CommunityStatus,
		Interests:          u.Interests,
		PersonalIdentity:   u.PersonalIdentity,
		Picture:            u.Picture,
	}
	if u.IsAdmin != nil {
		p.IsAdmin = *u.IsAdmin
	}
	return p
}
