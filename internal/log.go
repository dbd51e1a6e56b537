package internal

import (
	"fmt"
	"io"
	"strings"
)

func Logf(w io.Writer, prefix string, source Source, format string, a ...any) {
	parts := []string{}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if source != "" {
		parts = append(parts, fmt.Sprintf("[%s]", source))
	}
	parts = append(parts, fmt.Sprintf(format, a...))
	fmt.Fprintln(w, strings.Join(parts, " "))
}
