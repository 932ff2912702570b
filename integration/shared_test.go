//go:build basic || database || broker

// Package integration contains end-to-end tests that drive the spendwrap binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a spendwrap binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// ordersCSV has two 2025 orders and one 2024 order.
const ordersCSV = "\uFEFFOrder ID,Order Date,Title,Total Owed,Quantity\n" +
	"111-1,2025-01-15,Organic Avocado,$4.50,1\n" +
	"111-2,2025-02-20,USB-C Charging Cable,\"$1,012.00\",1\n" +
	"111-2,2025-02-20,Dog Leash,$12.00,1\n" +
	"111-3,2024-12-31,Paperback Novel,$9.99,1\n"

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the spendwrap binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "spendwrap-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "spendwrap")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // project root
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build spendwrap: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeOrders writes ordersCSV into a temp dir and returns its path.
func writeOrders(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(ordersCSV), 0o600))
	return path
}

// runSpendwrap runs the binary with a private HOME and the given env, returning stdout.
func runSpendwrap(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "HOME="+cmd.Dir)
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	stdout, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Logf("Command failed: %s\nStderr: %s", cmd.String(), string(exitErr.Stderr))
		}
		return string(stdout), err
	}
	return string(stdout), nil
}
