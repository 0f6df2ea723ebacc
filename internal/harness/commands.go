package harness

import "fmt"

// Reference tool command lines. Each is run through Config.Shell.

// generateCommand renders an NxN canvas filled with uniform random noise
// and stores it as an 8-bit palette PNG.
func generateCommand(tool string, size int, fixture string) string {
	return fmt.Sprintf("%s convert -size %dx%d xc: +noise Random PNG8:%s", tool, size, size, fixture)
}

// identifyCommand prints fixture metadata.
func identifyCommand(tool, fixture string) string {
	return fmt.Sprintf("%s identify %s", tool, fixture)
}

// convertCommand expands the palette fixture to 24-bit PNG and re-encodes
// it as uncompressed TGA. Only the last stage's exit status reaches the
// caller.
func convertCommand(tool, fixture string) string {
	return fmt.Sprintf("%s convert %s PNG24:- | %s convert - %s", tool, fixture, tool, ReferencePath(fixture))
}
