package main

import (
	"fmt"
	"net/http"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check application health"
}

func (c *HealthCheckCommand) Run(args []string) error {
	env := envProduction
	if len(args) > 0 {
		env = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", env))

	if err := checkHealth(env); err != nil {
		PrintError("Health check failed: %v", err)
		return err
	}

	// Also check response time
	start := time.Now()
	if err := checkHealth(env); err != nil {
		return err
	}
	duration := time.Since(start)

	if duration > 1*time.Second {
		PrintWarning("Health check warning: slow response time (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}

	return nil
}

func checkHealth(env string) error {
	port := "8080"
	if env == envStaging {
		port = "8081"
	}
	url := fmt.Sprintf("http://localhost:%s/healthz", port)

	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		// Try 127.0.0.1
		url = fmt.Sprintf("http://127.0.0.1:%s/healthz", port)
		resp, err = client.Get(url)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil
}
