//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// TestDailyEvent tests the daily event endpoint
func TestDailyEvent(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/daily/event", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if _, ok := result["day"]; !ok {
		t.Error("Expected 'day' field in daily event response")
	}

	// The cipher word must never reach the client
	if strings.Contains(string(body), "cipher_word") {
		t.Error("Daily event response leaks the cipher word")
	}
}

// TestListUpgrades tests the upgrade catalog for a logged-in player
func TestListUpgrades(t *testing.T) {
	playerID := loginFreshPlayer(t, "staging_buyer")

	resp, body := makeRequest(t, "GET", upgradesPath(playerID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var upgrades []map[string]interface{}
	if err := json.Unmarshal(body, &upgrades); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(upgrades) == 0 {
		t.Fatal("Expected at least one upgrade in the catalog")
	}
	if _, ok := upgrades[0]["price"]; !ok {
		t.Error("Expected 'price' field on upgrade entries")
	}
}
