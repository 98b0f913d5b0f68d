package solc

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := New()

		if c.path != DefaultBinary {
			t.Errorf("Expected path %q, got %q", DefaultBinary, c.path)
		}
		if c.log == nil {
			t.Error("Expected a no-op logger, got nil")
		}
	})

	t.Run("options", func(t *testing.T) {
		log := zap.NewNop()
		c := New(WithPath("/opt/solc/solc"), WithLogger(log))

		if c.path != "/opt/solc/solc" {
			t.Errorf("Expected the configured path, got %q", c.path)
		}
		if c.log != log {
			t.Error("Expected the configured logger")
		}
	})
}

// fakeSolc writes a shell script that ignores its stdin and prints the given
// standard-json output, and returns its path.
func fakeSolc(t *testing.T, output map[string]any) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}

	outJSON, err := json.Marshal(output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "solc")
	script := "#!/bin/sh\ncat >/dev/null\ncat <<'STANDARD_JSON'\n" + string(outJSON) + "\nSTANDARD_JSON\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return path
}

// metadataFor builds the metadata JSON string solc embeds per contract.
func metadataFor(t *testing.T, abi []map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"output": map[string]any{"abi": abi}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return string(raw)
}

func TestCompileSource(t *testing.T) {
	abi := []map[string]any{
		{
			"type": "function",
			"name": "transfer",
			"inputs": []map[string]any{
				{"name": "to", "type": "address"},
				{"name": "amount", "type": "uint256"},
			},
		},
	}

	t.Run("parses the compiled contract", func(t *testing.T) {
		path := fakeSolc(t, map[string]any{
			"contracts": map[string]any{
				"Token.sol": map[string]any{
					"Token": map[string]any{"metadata": metadataFor(t, abi)},
				},
			},
		})

		contract, err := New(WithPath(path)).CompileSource([]byte("contract Token {}"), "Token.sol")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if contract.Name != "Token" {
			t.Errorf("Expected contract 'Token', got %q", contract.Name)
		}
		if len(contract.Items) != 1 {
			t.Fatalf("Expected 1 ABI item, got %d", len(contract.Items))
		}
		if contract.Items[0].Kind() != "function" {
			t.Errorf("Expected a function item, got %q", contract.Items[0].Kind())
		}
	})

	t.Run("picks the first contract name in sorted order", func(t *testing.T) {
		path := fakeSolc(t, map[string]any{
			"contracts": map[string]any{
				"Multi.sol": map[string]any{
					"Zebra": map[string]any{"metadata": metadataFor(t, nil)},
					"Alpha": map[string]any{"metadata": metadataFor(t, nil)},
				},
			},
		})

		contract, err := New(WithPath(path)).CompileSource(nil, "Multi.sol")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if contract.Name != "Alpha" {
			t.Errorf("Expected contract 'Alpha', got %q", contract.Name)
		}
	})

	t.Run("compiler errors are fatal", func(t *testing.T) {
		path := fakeSolc(t, map[string]any{
			"errors": []map[string]any{
				{"severity": "error", "formattedMessage": "ParserError: expected ';'"},
			},
		})

		_, err := New(WithPath(path)).CompileSource([]byte("contract {"), "Bad.sol")
		if err == nil {
			t.Fatal("Expected an error")
		}
	})

	t.Run("warnings are not fatal", func(t *testing.T) {
		path := fakeSolc(t, map[string]any{
			"errors": []map[string]any{
				{"severity": "warning", "formattedMessage": "SPDX license identifier not provided"},
			},
			"contracts": map[string]any{
				"Token.sol": map[string]any{
					"Token": map[string]any{"metadata": metadataFor(t, nil)},
				},
			},
		})

		_, err := New(WithPath(path)).CompileSource(nil, "Token.sol")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("no contract in output", func(t *testing.T) {
		path := fakeSolc(t, map[string]any{"contracts": map[string]any{}})

		_, err := New(WithPath(path)).CompileSource(nil, "Empty.sol")
		if !errors.Is(err, ErrNoContract) {
			t.Fatalf("Expected ErrNoContract, got %v", err)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "definitely-not-solc")

		_, err := New(WithPath(path)).CompileSource(nil, "Token.sol")
		if err == nil {
			t.Fatal("Expected an error")
		}
	})
}
