package core

// Color is a palette slot for a screen cell. The platform decides how each
// slot looks; games only pick the role.
type Color uint8

const (
	ColorDefault Color = iota

	// Capsule halves
	ColorRed
	ColorYellow
	ColorBlue

	// Viruses share the capsule hue but are drawn emphasized
	ColorVirusRed
	ColorVirusYellow
	ColorVirusBlue

	ColorFrame  // Bottle outline
	ColorTitle  // Headings
	ColorAccent // Chain banner and other callouts
	ColorDim    // Key hints
)

// Virus returns the emphasized variant of a capsule color.
// Other colors are returned unchanged.
func (c Color) Virus() Color {
	switch c {
	case ColorRed:
		return ColorVirusRed
	case ColorYellow:
		return ColorVirusYellow
	case ColorBlue:
		return ColorVirusBlue
	default:
		return c
	}
}
