package pvmgen

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("snake", func(t *testing.T) {
		cases := []struct{ in, out string }{
			{"MyFunction", "my_function"},
			{"myFunction", "my_function"},
			{"my_function", "my_function"},
			{"my-function", "my_function"},
			{"transferFrom", "transfer_from"},
			{"balanceOf", "balance_of"},
		}

		for _, tc := range cases {
			if got := Normalize(tc.in, Snake); got != tc.out {
				t.Errorf("Snake(%q): expected %q, got %q", tc.in, tc.out, got)
			}
		}
	})

	t.Run("pascal", func(t *testing.T) {
		cases := []struct{ in, out string }{
			{"my_function", "MyFunction"},
			{"myFunction", "MyFunction"},
			{"MyFunction", "MyFunction"},
			{"my token", "MyToken"},
		}

		for _, tc := range cases {
			if got := Normalize(tc.in, Pascal); got != tc.out {
				t.Errorf("Pascal(%q): expected %q, got %q", tc.in, tc.out, got)
			}
		}
	})

	t.Run("upper snake", func(t *testing.T) {
		cases := []struct{ in, out string }{
			{"transfer", "TRANSFER"},
			{"transferFrom", "TRANSFER_FROM"},
			{"InsufficientBalance", "INSUFFICIENT_BALANCE"},
			{"TRANSFER_FROM", "TRANSFER_FROM"},
		}

		for _, tc := range cases {
			if got := Normalize(tc.in, UpperSnake); got != tc.out {
				t.Errorf("UpperSnake(%q): expected %q, got %q", tc.in, tc.out, got)
			}
		}
	})

	t.Run("kebab", func(t *testing.T) {
		cases := []struct{ in, out string }{
			{"MyToken", "my-token"},
			{"my_token", "my-token"},
			{"my-token", "my-token"},
		}

		for _, tc := range cases {
			if got := Normalize(tc.in, Kebab); got != tc.out {
				t.Errorf("Kebab(%q): expected %q, got %q", tc.in, tc.out, got)
			}
		}
	})

	t.Run("idempotent for every casing", func(t *testing.T) {
		inputs := []string{"MyFunction", "my_function", "transferFrom", "ERC20", "token2x", "_123"}
		casings := []Casing{Snake, Pascal, UpperSnake, Kebab}

		for _, in := range inputs {
			for _, c := range casings {
				once := Normalize(in, c)
				twice := Normalize(once, c)
				if once != twice {
					t.Errorf("Normalize(%q, %d) not idempotent: %q then %q", in, c, once, twice)
				}
			}
		}
	})

	t.Run("empty input yields a legal identifier", func(t *testing.T) {
		if got := Normalize("", Snake); got != "_" {
			t.Errorf("Expected \"_\", got %q", got)
		}
		if got := Normalize("---", Snake); got != "_" {
			t.Errorf("Expected \"_\" for separator-only input, got %q", got)
		}
	})

	t.Run("numeric input gets an underscore prefix", func(t *testing.T) {
		if got := Normalize("123", Snake); got != "_123" {
			t.Errorf("Expected \"_123\", got %q", got)
		}
		if got := Normalize("2fast", Pascal); got != "_2fast" {
			t.Errorf("Expected \"_2fast\", got %q", got)
		}

		// And it stays stable on re-normalization.
		if got := Normalize("_123", Snake); got != "_123" {
			t.Errorf("Expected \"_123\", got %q", got)
		}
	})

	t.Run("digits do not start words", func(t *testing.T) {
		// Only non-alphanumeric runs and lower-to-upper transitions split;
		// a digit before an uppercase letter is not a boundary.
		if got := Normalize("erc20Token", Snake); got != "erc20token" {
			t.Errorf("Expected \"erc20token\", got %q", got)
		}
	})
}
