package main

import (
	"fmt"
	"os"

	"diffract/internal/diffraction"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if diffraction.IsValidationError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
