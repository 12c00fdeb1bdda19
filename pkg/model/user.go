package model

type User struct {
	ID           int64    `json:"id" bson:"_id" validate:"required,min=1"`
	Login        string   `json:"login" bson:"login" validate:"required,min=3,max=100"`
	PasswordHash string   `json:"-" bson:"password_hash" validate:"required"`
	Roles        []string `json:"roles,omitempty" bson:"roles" validate:"omitempty,dive,oneof=ROLE_USER ROLE_ADMIN"`
}

// UserRef is the already-authenticated identity handed to the reservation core.
type UserRef struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Login: u.Login}
}
