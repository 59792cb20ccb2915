package models

// UserProfile is a document from the "users" collection. The document ID is
// the auth UID of the account it describes.
type UserProfile struct {
	ID       string `json:"id"`
	UID      string `json:"uid,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Telefone string `json:"telefone,omitempty"`
	Endereco string `json:"endereco,omitempty"`
	Role     string `json:"role,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// IsAdministrator reports whether the profile carries the admin marker in
// either of the two forms the registration apps have used over time.
func (u *UserProfile) IsAdministrator() bool {
	return u.Role == "admin" || u.IsAdmin
}

func UserProfileFromDoc(id string, data map[string]interface{}) UserProfile {
	uid := asString(data["uid"])
	if uid == "" {
		uid = id // the document ID is the auth UID
	}
	return UserProfile{
		ID:       id,
		UID:      uid,
		Name:     asString(data["name"]),
		Email:    asString(data["email"]),
		Telefone: asString(data["telefone"]),
		Endereco: asString(data["endereco"]),
		Role:     asString(data["role"]),
		IsAdmin:  asBool(data["isAdmin"]),
	}
}
