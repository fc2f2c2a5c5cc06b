package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://pokeapi.co/api/v2/pokemon/7/":   "7",
		"https://pokeapi.co/api/v2/pokemon/151":  "151",
		"https://pokeapi.co/api/v2/pokemon//25//": "25",
		"":                                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, IDFromURL(in), in)
	}
}

func TestRecordHelpers(t *testing.T) {
	r := Record{Name: "squirtle", Types: []string{"water"}, Stats: map[string]int{StatHP: 44}}
	assert.Equal(t, 44, r.Stat(StatHP))
	assert.Equal(t, 0, r.Stat(StatSpeed))
	assert.Equal(t, "water", r.PrimaryType())
	assert.Equal(t, "unknown", Record{}.PrimaryType())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("all"))
	assert.True(t, ValidCategory("water"))
	assert.False(t, ValidCategory("Water"))
	assert.False(t, ValidCategory("shadow"))
}
