package domain

// CategoryAll selects the whole catalog instead of a type tag.
const CategoryAll = "all"

// Stat keys in the order they are displayed and ranked.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

var TrackedStats = []string{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

// StatLabels are the short column labels used by the leaderboard.
var StatLabels = map[string]string{
	StatHP:             "HP",
	StatAttack:         "ATK",
	StatDefense:        "DEF",
	StatSpecialAttack:  "Sp. Atk",
	StatSpecialDefense: "Sp. Def",
	StatSpeed:          "Speed",
}

var Categories = []string{
	CategoryAll,
	"fire", "water", "grass", "electric", "bug", "normal", "poison",
	"ground", "fairy", "fighting", "psychic", "rock", "ghost", "ice",
	"dragon", "dark", "steel", "flying",
}

// ValidCategory reports whether c is "all" or a known type tag.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
