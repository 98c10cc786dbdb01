// Package tools verifies that the external binaries a run depends on are
// installed before any work starts.
package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// Check reports an error naming every binary that is not on PATH.
func Check(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tool(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
