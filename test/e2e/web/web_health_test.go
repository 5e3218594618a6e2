package web_test

import (
	"testing"

	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// TestLivezEndpoint verifies the liveness check endpoint answers as soon as
// the container is serving.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := watchsdk.NewClient(baseURL)

	health, err := client.Livez(t.Context())
	assertHealthy(t, health, err)

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check reaches the database.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := watchsdk.NewClient(baseURL)

	health, err := client.Readyz(t.Context())
	assertHealthy(t, health, err)

	t.Logf("Readyz endpoint is healthy")
}
