package main

import (
	"os"

	"github.com/WizCoderr/admin.ajastra/internal/console"
)

func main() {
	if err := console.Execute(); err != nil {
		os.Exit(1)
	}
}
