package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&CheckDepsCommand{})
	registry.Register(&CheckDBCommand{})
	registry.Register(&WaitForDBCommand{})
	registry.Register(&MigrateCommand{})
	registry.Register(&CheckCoverageCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&DoctorCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}
