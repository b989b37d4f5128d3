package catalogue

import (
	"fmt"
	"strings"
)

// ConfigurationError reports every problem found in a catalogue definition.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalogue validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}
