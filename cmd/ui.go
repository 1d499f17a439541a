package cmd

import (
	"fmt"
	"io"
	"strings"
)

// ANSI terminal colors
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorBlue  = "\033[34m"
)

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s%s%s%s\n", ColorBold, ColorBlue, title, ColorReset)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

func printKeyValue(w io.Writer, key, value string) {
	if value == "" {
		fmt.Fprintf(w, "%-35s\n", key)
	} else {
		fmt.Fprintf(w, "%-35s %s\n", key+":", value)
	}
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "   %s✓%s %s\n", ColorGreen, ColorReset, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "   %s✗%s %s\n", ColorRed, ColorReset, fmt.Sprintf(format, args...))
}
