package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes: 0 clean, 1 configuration or runtime failure, 2 terminated by
// signal, 3 validation issues at or above the failure level.
func main() {
	err := Execute()
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, errIssuesFound):
		os.Exit(3)
	case errors.Is(err, errInterrupted):
		fmt.Fprintln(os.Stderr, "interrupted")
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
