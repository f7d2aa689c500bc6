package profile

import (
	"strings"

	"github.com/socialcircles/circles-web/internal/api"
)

// Change is a profile save worked out from a submitted form.
type Change struct {
	// New is set when the member has no stored profile yet.
	New     bool
	Fields  []string
	Request api.ProfileRequest
	Profile UserProfile
}

// Changed reports whether the save would alter anything.
func (c Change) Changed() bool {
	return c.New || len(c.Fields) > 0
}

// Diff compares a submitted form with the loaded state. The email is never
// taken from the form: it comes from the stored profile or, for a new
// profile, from the signed-in identity.
func Diff(current State, form UserProfile) Change {
	ch := Change{New: current.Status != StatusComplete}

	base := current.Profile
	if ch.New {
		base = UserProfile{Email: current.Identity.Email}
	}

	next := base
	fields := []struct {
		name string
		dst  *string
		val  string
	}{
		{"first_name", &next.FirstName, form.FirstName},
		{"last_name", &next.LastName, form.LastName},
		{"preferred_name", &next.PreferredName, form.PreferredName},
		{"pronouns", &next.Pronouns, form.Pronouns},
		{"phone_number", &next.PhoneNumber, form.PhoneNumber},
		{"address", &next.Address, form.Address},
		{"marital_status", &next.MaritalStatus, form.MaritalStatus},
		{"family_circumstance", &next.FamilyCircumstance, form.FamilyCircumstance},
		{"community_status", &next.CommunityStatus, form.CommunityStatus},
		{"interests", &next.Interests, form.Interests},
		{"personal_identity", &next.PersonalIdentity, form.PersonalIdentity},
	}

	for _, f := range fields {
		v := strings.TrimSpace(f.val)
		if v != *f.dst {
			*f.dst = v
			ch.Fields = append(ch.Fields, f.name)
		}
	}

	ch.Profile = next
	ch.Request = api.ProfileRequest{
		FirstName:          next.FirstName,
		LastName:           next.LastName,
		Email:              next.Email,
		Address:            next.Address,
		PreferredName:      next.PreferredName,
		Pronouns:           next.Pronouns,
		PhoneNumber:        next.PhoneNumber,
		MaritalStatus:      next.MaritalStatus,
		FamilyCircumstance: next.FamilyCircumstance,
		CommunityStatus:    next.CommunityStatus,
		Interests:          next.Interests,
		PersonalIdentity:   next.PersonalIdentity,
	}
	return ch
}
