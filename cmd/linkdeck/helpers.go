// Shared helpers for linkdeck CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/do/v2"

	"github.com/linkdecklabs/linkdeck/internal/api"
	"github.com/linkdecklabs/linkdeck/internal/links"
	"github.com/linkdecklabs/linkdeck/internal/session"
)

// invokeGuard returns the session guard from the container.
func invokeGuard() (*session.Guard, error) {
	return do.Invoke[*session.Guard](injector)
}

// invokeManager returns the link collection manager.
func invokeManager() (*links.Manager, error) {
	return do.Invoke[*links.Manager](injector)
}

// invokeClient returns the API gateway.
func invokeClient() (*api.Client, error) {
	return do.Invoke[*api.Client](injector)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// formatCount renders a click count compactly: 950 stays 950, 1234
// becomes 1.2K, 3400000 becomes 3.4M.
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000_000), ".0") + "M"
	case n >= 1_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000), ".0") + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// confirm prompts on stderr and reads a yes/no answer from stdin.
func confirm(prompt string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
