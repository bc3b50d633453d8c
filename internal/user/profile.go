package user

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Profile is a typed, read-only view of a randomuser.me-shaped Record. Fields
// the source omits stay zero.
type Profile struct {
	Gender string `json:"gender"`
	Name   struct {
		Title string `json:"title"`
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Location struct {
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"location"`
	Email string `json:"email"`
	Login struct {
		UUID     string `json:"uuid"`
		Username string `json:"username"`
	} `json:"login"`
	DOB struct {
		Date string `json:"date"`
		Age  int    `json:"age"`
	} `json:"dob"`
	Phone   string `json:"phone"`
	Cell    string `json:"cell"`
	Picture struct {
		Large     string `json:"large"`
		Medium    string `json:"medium"`
		Thumbnail string `json:"thumbnail"`
	} `json:"picture"`
	Nat string `json:"nat"`
}

// Profile decodes r. Records that are not JSON objects decode to an empty
// Profile and a non-nil error; the record itself is untouched.
func (r Record) Profile() (Profile, error) {
	var p Profile
	err := json.Unmarshal(r, &p)
	return p, err
}

// FullName joins first and last name, falling back to the login username.
func (p Profile) FullName() string {
	name := strings.TrimSpace(p.Name.First + " " + p.Name.Last)
	if name == "" {
		name = p.Login.Username
	}
	return name
}

// GenderLabel normalises the gender field for display.
func (p Profile) GenderLabel() string {
	switch strings.ToLower(p.Gender) {
	case "male":
		return "male"
	case "female":
		return "female"
	default:
		return "unspecified"
	}
}

// Key returns the identity used to key a rendered record: email, then login
// uuid, then the record's position in the list.
func (p Profile) Key(index int) string {
	switch {
	case p.Email != "":
		return p.Email
	case p.Login.UUID != "":
		return p.Login.UUID
	default:
		return "#" + strconv.Itoa(index)
	}
}
