package pvmgen

import (
	"errors"
	"testing"
)

func TestSignature(t *testing.T) {
	t.Run("joins types in declaration order", func(t *testing.T) {
		sig, err := Signature("transfer", []Param{
			{Name: "to", Type: "address"},
			{Name: "amount", Type: "uint256"},
		})

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sig != "transfer(address,uint256)" {
			t.Errorf("Expected 'transfer(address,uint256)', got %q", sig)
		}
	})

	t.Run("order is significant", func(t *testing.T) {
		sig, err := Signature("transfer", []Param{
			{Name: "amount", Type: "uint256"},
			{Name: "to", Type: "address"},
		})

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sig != "transfer(uint256,address)" {
			t.Errorf("Expected 'transfer(uint256,address)', got %q", sig)
		}
	})

	t.Run("no parameters yields empty parens", func(t *testing.T) {
		sig, err := Signature("totalSupply", nil)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sig != "totalSupply()" {
			t.Errorf("Expected 'totalSupply()', got %q", sig)
		}
	})

	t.Run("parameter names do not affect the signature", func(t *testing.T) {
		a, _ := Signature("f", []Param{{Name: "x", Type: "bool"}})
		b, _ := Signature("f", []Param{{Name: "", Type: "bool"}})

		if a != b {
			t.Errorf("Expected identical signatures, got %q and %q", a, b)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := Signature("", []Param{{Type: "bool"}})

		var nameErr *EmptyNameError
		if !errors.As(err, &nameErr) {
			t.Fatalf("Expected *EmptyNameError, got %T", err)
		}
	})
}

func TestItemSignatures(t *testing.T) {
	t.Run("function", func(t *testing.T) {
		fn := Function{Name: "fibonacci", Inputs: []Param{{Name: "n", Type: "uint32"}}}

		sig, err := fn.Signature()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sig != "fibonacci(uint32)" {
			t.Errorf("Expected 'fibonacci(uint32)', got %q", sig)
		}
	})

	t.Run("event ignores indexed flags", func(t *testing.T) {
		ev := Event{Name: "Transfer", Inputs: []Param{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "value", Type: "uint256"},
		}}

		sig, err := ev.Signature()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sig != "Transfer(address,address,uint256)" {
			t.Errorf("Expected 'Transfer(address,address,uint256)', got %q", sig)
		}
	})

	t.Run("error", func(t *testing.T) {
		e := ErrorDef{Name: "InsufficientBalance", Inputs: []Param{
			{Name: "account", Type: "address"},
			{Name: "needed", Type: "uint256"},
		}}

		sig, err := e.Signature()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sig != "InsufficientBalance(address,uint256)" {
			t.Errorf("Expected 'InsufficientBalance(address,uint256)', got %q", sig)
		}
	})

	t.Run("empty names are fatal for every kind", func(t *testing.T) {
		kinds := []struct {
			name string
			sig  func() (string, error)
		}{
			{"function", Function{}.Signature},
			{"event", Event{}.Signature},
			{"error", ErrorDef{}.Signature},
		}

		for _, k := range kinds {
			_, err := k.sig()

			var nameErr *EmptyNameError
			if !errors.As(err, &nameErr) {
				t.Fatalf("Expected *EmptyNameError for %s, got %T", k.name, err)
			}
			if nameErr.Kind != k.name {
				t.Errorf("Expected kind %q, got %q", k.name, nameErr.Kind)
			}
		}
	})
}
