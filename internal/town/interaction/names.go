package interaction

// DefaultNames maps tile mesh names to catalog keys. The entries follow
// the authored content, so casing differs per building and "tilesmallhouses"
// targets "SmallHouse" even though the catalog key is "SmallHouses".
func DefaultNames() map[string]string {
	return map[string]string{
		"tilecastle":      "Castle",
		"tiledock":        "Dock",
		"tilefountain":    "Fountain",
		"tiletavern":      "Tavern",
		"tilewindmill":    "Windmill",
		"tilehouses":      "Houses",
		"tilebighouses":   "BigHouse",
		"tilesmallhouses": "SmallHouse",
	}
}
