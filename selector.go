package pvmgen

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// SelectorOf computes the 4-byte dispatch selector for a canonical
// signature: the first four bytes of the Keccak-256 hash of its UTF-8
// bytes. Bit-exact with the Ethereum ABI convention, so externally
// constructed call payloads dispatch correctly.
func SelectorOf(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// TopicOf computes the full 32-byte Keccak-256 hash of a canonical
// signature, used as the topic discriminant for events and errors.
func TopicOf(signature string) [32]byte {
	var topic [32]byte
	copy(topic[:], crypto.Keccak256([]byte(signature)))
	return topic
}

// FormatSelector renders a selector as a Rust byte-array literal body:
// "0xa9, 0x05, 0x9c, 0xbb".
func FormatSelector(sel [4]byte) string {
	return formatBytes(sel[:])
}

// FormatTopic renders a 32-byte topic as a Rust byte-array literal body,
// eight bytes per line, matching the generated-source layout.
func FormatTopic(topic [32]byte) string {
	lines := make([]string, 0, 4)
	for i := 0; i < len(topic); i += 8 {
		lines = append(lines, formatBytes(topic[i:i+8]))
	}
	return strings.Join(lines, ",\n    ")
}

func formatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02x", v)
	}
	return strings.Join(parts, ", ")
}
