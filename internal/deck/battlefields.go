package deck

// battlefieldNames is the closed set of battlefield card names. The export
// format carries no section marker for battlefields, so classification is by
// exact name. A reprint sharing one of these names still classifies as a
// battlefield; that is a known limitation of the format, not something to
// work around.
var battlefieldNames = map[string]struct{}{
	"Bandle Market":         {},
	"Ecliptic Vaults":       {},
	"Grand Plaza":           {},
	"Hextech Forge":         {},
	"Monument of Power":     {},
	"Shadow Isles Crossing": {},
	"Sunken Temple":         {},
	"Targon's Peak":         {},
	"The Dreaming Pool":     {},
	"The Howling Abyss":     {},
	"Vilemaw's Lair":        {},
	"Windswept Summit":      {},
}

// IsBattlefield reports whether name is a known battlefield card.
func IsBattlefield(name string) bool {
	_, ok := battlefieldNames[name]
	return ok
}
