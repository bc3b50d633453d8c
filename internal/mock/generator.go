// Package mock serves a local stand-in for the randomuser.me API so the
// directory can be exercised offline and in tests.
package mock

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is one generated record, shaped like a randomuser.me result.
type User struct {
	Gender   string   `json:"gender"`
	Name     Name     `json:"name"`
	Location Location `json:"location"`
	Email    string   `json:"email"`
	Login    Login    `json:"login"`
	DOB      DOB      `json:"dob"`
	Phone    string   `json:"phone"`
	Cell     string   `json:"cell"`
	Picture  Picture  `json:"picture"`
	Nat      string   `json:"nat"`
}

type Name struct {
	Title string `json:"title"`
	First string `json:"first"`
	Last  string `json:"last"`
}

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type Login struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
}

type DOB struct {
	Date string `json:"date"`
	Age  int    `json:"age"`
}

type Picture struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

type place struct {
	city, state, country, nat, phonePrefix string
}

var (
	maleNames   = []string{"Hiroshi", "Lucas", "Mateo", "Noah", "Oskar", "Ravi", "Tomas", "Yusuf"}
	femaleNames = []string{"Aiko", "Clara", "Elena", "Freya", "Ines", "Maya", "Nora", "Sofia"}
	lastNames   = []string{"Andersen", "Costa", "Dubois", "Fischer", "Kowalski", "Moreau", "Sato", "Silva", "Tanaka", "Virtanen"}
	places      = []place{
		{"Osaka", "Osaka", "Japan", "JP", "06"},
		{"Lyon", "Rhône", "France", "FR", "04"},
		{"Porto", "Porto", "Portugal", "PT", "22"},
		{"Hamburg", "Hamburg", "Germany", "DE", "040"},
		{"Tampere", "Pirkanmaa", "Finland", "FI", "03"},
		{"Gdańsk", "Pomorskie", "Poland", "PL", "58"},
	}
)

// refDate anchors ages so output does not drift with the wall clock.
var refDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator produces deterministic user lists: the same seed and count always
// yield the same users.
type Generator struct {
	defaultSeed string
}

// NewGenerator creates a generator that uses seed when a request names none.
func NewGenerator(seed string) *Generator {
	return &Generator{defaultSeed: seed}
}

// DefaultSeed is the seed used when a request names none.
func (g *Generator) DefaultSeed() string {
	return g.defaultSeed
}

// Users returns n users for seed and page. Emails are unique within a page.
func (g *Generator) Users(seed string, page, n int) []User {
	if seed == "" {
		seed = g.defaultSeed
	}
	rng := rand.New(rand.NewSource(seedValue(seed, page)))

	users := make([]User, 0, n)
	seen := make(map[string]int, n)
	for range n {
		u := generateUser(rng)
		local := strings.ToLower(u.Name.First + "." + u.Name.Last)
		if c := seen[local]; c > 0 {
			u.Email = fmt.Sprintf("%s%d@example.com", local, c+1)
		} else {
			u.Email = local + "@example.com"
		}
		seen[local]++
		users = append(users, u)
	}
	return users
}

func seedValue(seed string, page int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%d", seed, page)
	return int64(h.Sum64())
}

func generateUser(rng *rand.Rand) User {
	var u User
	if rng.Intn(2) == 0 {
		u.Gender = "male"
		u.Name = Name{Title: "Mr", First: pick(rng, maleNames)}
	} else {
		u.Gender = "female"
		u.Name = Name{Title: pick(rng, []string{"Ms", "Mrs", "Miss"}), First: pick(rng, femaleNames)}
	}
	u.Name.Last = pick(rng, lastNames)

	p := places[rng.Intn(len(places))]
	u.Location = Location{City: p.city, State: p.state, Country: p.country}
	u.Nat = p.nat
	u.Phone = fmt.Sprintf("%s-%03d-%04d", p.phonePrefix, rng.Intn(1000), rng.Intn(10000))
	u.Cell = fmt.Sprintf("%s-%03d-%04d", p.phonePrefix, rng.Intn(1000), rng.Intn(10000))

	age := 18 + rng.Intn(60)
	born := refDate.AddDate(-age, 0, -rng.Intn(365))
	u.DOB = DOB{Date: born.Format("2006-01-02T15:04:05.000Z"), Age: age}

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		id = uuid.Nil
	}
	u.Login = Login{
		UUID:     id.String(),
		Username: strings.ToLower(u.Name.First) + fmt.Sprintf("%03d", rng.Intn(1000)),
	}

	folder := "men"
	if u.Gender == "female" {
		folder = "women"
	}
	n := rng.Intn(100)
	u.Picture = Picture{
		Large:     fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", folder, n),
		Medium:    fmt.Sprintf("https://randomuser.me/api/portraits/med/%s/%d.jpg", folder, n),
		Thumbnail: fmt.Sprintf("https://randomuser.me/api/portraits/thumb/%s/%d.jpg", folder, n),
	}
	return u
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}
