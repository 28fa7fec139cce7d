// Package linkdeck holds module-level metadata.
package linkdeck

// Version is the linkdeck release version.
const Version = "0.1.0"
