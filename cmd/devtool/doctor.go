package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/kovertlabs/deepcover/internal/config"
)

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (deps + env + db)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false

	depsCmd := &CheckDepsCommand{}
	if err := depsCmd.Run(nil); err != nil {
		PrintError("Dependencies check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Dependencies OK")
	}

	// .env is optional; the variables may come from the shell instead.
	_ = godotenv.Load()
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		PrintError("Environment check failed: %v", err)
		hasError = true
	} else {
		for _, w := range warnings {
			PrintWarning("%s", w)
		}
		PrintSuccess("Environment OK")
	}

	dbCmd := &CheckDBCommand{}
	if err := dbCmd.Run(nil); err != nil {
		PrintError("Database check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Database OK")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
