package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mdp/qrterminal/v3"
	"golang.org/x/term"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// printConnectInfo tells the front-end (or the person launching it) where to connect.
func printConnectInfo(w io.Writer, wsURL, token string, qr bool) {
	fmt.Fprintf(w, "mdview %s\n", version)
	fmt.Fprintf(w, "  URL:   %s\n", wsURL)
	fmt.Fprintf(w, "  Token: %s\n", token)

	if qr {
		fmt.Fprintln(w)
		qrterminal.GenerateHalfBlock(wsURL+"?token="+token, qrterminal.L, w)
	}
}
