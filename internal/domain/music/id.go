package music

// IDLength is the fixed length of every catalog identifier.
const IDLength = 16

// ValidID reports whether id is exactly 16 characters of [0-9a-z].
func ValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
