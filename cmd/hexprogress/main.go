// Command hexprogress renders hexagon progress indicators
// to PNG, GIF and PDF files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
