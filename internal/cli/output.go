package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/bizyair/bizyair-go"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	hintColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
	dimColor  = color.New(color.FgHiBlack)
)

// printError writes err and, for key problems, how to fix them.
func printError(w io.Writer, err error) {
	errColor.Fprintf(w, "Error: ")
	fmt.Fprintln(w, err)

	var apiErr *bizyair.Error
	if !errors.As(err, &apiErr) {
		return
	}
	switch apiErr.Code {
	case bizyair.CodeInvalidCredential, bizyair.CodeUnauthorized:
		hintColor.Fprintf(w, "Get a key from %s, then run 'bizyair config set-key <key>'.\n", bizyair.KeyPortalURL)
	case bizyair.CodeConnectionFailed:
		hintColor.Fprintln(w, "Check the server URL with 'bizyair config view'.")
	}
}
