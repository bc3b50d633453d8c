package mock

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDeterministic(t *testing.T) {
	gen := NewGenerator("fixed")

	a := gen.Users("", 1, 20)
	b := gen.Users("fixed", 1, 20)
	assert.Equal(t, a, b, "empty seed should fall back to the default seed")

	c := gen.Users("other", 1, 20)
	assert.NotEqual(t, a, c)

	d := gen.Users("fixed", 2, 20)
	assert.NotEqual(t, a, d, "pages should differ")
}

func TestGeneratorCount(t *testing.T) {
	gen := NewGenerator("count")
	for _, n := range []int{0, 1, 7, 250} {
		assert.Len(t, gen.Users("", 1, n), n)
	}
}

func TestGeneratorUniqueEmails(t *testing.T) {
	users := NewGenerator("dupes").Users("", 1, 500)

	seen := make(map[string]bool, len(users))
	for _, u := range users {
		require.False(t, seen[u.Email], "duplicate email %s", u.Email)
		seen[u.Email] = true
	}
}

func TestGeneratorFieldsPopulated(t *testing.T) {
	for _, u := range NewGenerator("fields").Users("", 1, 50) {
		assert.Contains(t, []string{"male", "female"}, u.Gender)
		assert.NotEmpty(t, u.Name.First)
		assert.NotEmpty(t, u.Name.Last)
		assert.True(t, strings.HasSuffix(u.Email, "@example.com"), u.Email)
		assert.GreaterOrEqual(t, u.DOB.Age, 18)
		assert.NotEmpty(t, u.Picture.Thumbnail)
		assert.NotEmpty(t, u.Nat)

		id, err := uuid.Parse(u.Login.UUID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	}
}
