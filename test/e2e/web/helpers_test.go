package web_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/forumwatch/threadwatch/pkg/watchsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for web service end-to-end tests:
 * container setup, login helpers, and assertions.
 */

const (
	testImageName = "threadwatch-web-test:latest"

	adminEmail    = "admin@threadwatch.test"
	adminPassword = "Admin123!"
	sessionSecret = "e2e-session-secret-do-not-reuse"
)

// TestMain builds the Docker image once before all tests and removes it
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Web Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Web Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/web/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupWebContainer starts the web service in a container and returns the
// base URL. SMTP is left unconfigured so no mail leaves the container.
func setupWebContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"WEB_DATABASE_FILE": "/tmp/threadwatch.db",
			"WEB_PEPPER_FILE":   "/tmp/pepper",
			"SESSION_SECRET":    sessionSecret,
			"ADMIN_EMAIL":       adminEmail,
			"ADMIN_PASSWORD":    adminPassword,
			"ENV":               "test",
			"LOG_LEVEL":         "info",
			"LOG_FORMAT":        "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// adminClient returns a browser logged in as the seeded administrator.
func adminClient(t *testing.T, baseURL string) *watchsdk.Client {
	t.Helper()

	client := watchsdk.NewClient(baseURL)
	require.NoError(t, client.Login(t.Context(), adminEmail, adminPassword))
	return client
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *watchsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError verifies the error is an API failure with the given code.
func assertAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()
	var apiErr *watchsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

// assertRedirect verifies the error is a redirect to the given location.
func assertRedirect(t *testing.T, err error, location string) {
	t.Helper()
	var redirect *watchsdk.RedirectError
	require.ErrorAs(t, err, &redirect)
	require.Equal(t, location, redirect.Location)
}
