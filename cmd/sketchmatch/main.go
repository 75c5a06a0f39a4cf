package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ThatOtherAndrew/Sketchmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrNoMatch) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
