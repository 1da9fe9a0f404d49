package users

import (
	"github.com/xyz-asif/goalpath/internal/pkg/datetime"
)

// User is a registered profile with a follower counter.
// @Description Registered user. `image` is the stored file name, `imageName` the name it was uploaded with.
type User struct {
	ID          int64          `json:"id" example:"5"`
	Username    string         `json:"username" example:"alice"`
	Email       string         `json:"email" example:"alice@example.com"`
	Gender      string         `json:"gender" example:"female"`
	Image       *string        `json:"image" example:"3f0c2a4e-1b7d-4c52-9b1e-2a8f0d6c7e11.png"`
	ImageName   *string        `json:"imageName" example:"photo.png"`
	Password    string         `json:"password" example:"pw1"`
	Mobile      string         `json:"mobile" example:"0771234567"`
	Followers   int            `json:"followers" example:"0"`
	DateOfBirth *datetime.Date `json:"dateOfBirth" swaggertype:"string" example:"1998-04-12"`
	Description string         `json:"description" example:"Morning runner"`
}

// HasImage reports whether the user references a stored file.
func (u *User) HasImage() bool {
	return u.Image != nil && *u.Image != ""
}

// Details holds the profile fields an update overwrites.
// @Description Profile fields overwritten by an update
type Details struct {
	Username    string         `json:"username" example:"alice"`
	Email       string         `json:"email" example:"alice@example.com"`
	Gender      string         `json:"gender" example:"female"`
	Password    string         `json:"password" example:"pw1"`
	Mobile      string         `json:"mobile" example:"0771234567"`
	DateOfBirth *datetime.Date `json:"dateOfBirth" swaggertype:"string" example:"1998-04-12"`
	Description string         `json:"description" example:"Morning runner"`
}

// Apply overwrites the user's profile fields. Image, followers and id are untouched.
func (d *Details) Apply(u *User) {
	u.Username = d.Username
	u.Email = d.Email
	u.Gender = d.Gender
	u.Password = d.Password
	u.Mobile = d.Mobile
	u.DateOfBirth = d.DateOfBirth
	u.Description = d.Description
}

// Credentials is the login body.
type Credentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
}
