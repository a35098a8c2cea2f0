package cmdutils

import (
	"fmt"
	"io"
)

const logo = "🧮"

// PrintResponse writes a final answer under the assistant label.
func PrintResponse(w io.Writer, label, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(w, "\n%s %s\n%s\n\n", logo, label, text)
}
