// Package ascii provides the ASCII art banner printed at the top of the report.
package ascii

// GetBanner returns the report title rendered in the figlet "slant" font.
//
// Returns:
//   - A slice of strings, where each string represents one line of ASCII art
//
// Lines carry no color codes; the caller decides how to style them.
func GetBanner() []string {
	return []string{
		"   _____            __                    ____                        _",
		"  / ___/__  _______/ /____  ____ ___     / __ \\_   _____  ______   __(_)__ _      __",
		"  \\__ \\/ / / / ___/ __/ _ \\/ __ `__ \\   / / / / | / / _ \\/ ___/ | / / / _ \\ | /| / /",
		" ___/ / /_/ (__  ) /_/  __/ / / / / /  / /_/ /| |/ /  __/ /   | |/ / /  __/ |/ |/ /",
		"/____/\\__, /____/\\__/\\___/_/ /_/ /_/   \\____/ |___/\\___/_/    |___/_/\\___/|__/|__/",
		"     /____/",
	}
}
