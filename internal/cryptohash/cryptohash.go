// Package cryptohash provides hashing helpers shared by blocks and wallets.
package cryptohash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// hexToBinary maps every lowercase hex digit to its 4-bit representation.
var hexToBinary = map[rune]string{
	'0': "0000", '1': "0001", '2': "0010", '3': "0011",
	'4': "0100", '5': "0101", '6': "0110", '7': "0111",
	'8': "1000", '9': "1001", 'a': "1010", 'b': "1011",
	'c': "1100", 'd': "1101", 'e': "1110", 'f': "1111",
}

// CryptoHash returns a hex encoded SHA-256 hash of the given arguments.
// Arguments are JSON encoded and sorted before hashing, so their order does not matter.
func CryptoHash(args ...interface{}) string {
	encoded := make([]string, 0, len(args))
	for _, arg := range args {
		b, err := json.Marshal(arg)
		if err != nil {
			// fall back to the fmt representation for values json cannot handle (channels, funcs)
			b = []byte(fmt.Sprintf("%#v", arg))
		}
		encoded = append(encoded, string(b))
	}
	sort.Strings(encoded)
	sum := sha256.Sum256([]byte(strings.Join(encoded, "")))
	return hex.EncodeToString(sum[:])
}

// HexToBinary converts a hex string into its binary string representation.
func HexToBinary(hexString string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(hexString) * 4)
	for _, char := range strings.ToLower(hexString) {
		bits, ok := hexToBinary[char]
		if !ok {
			return "", fmt.Errorf("%q: not a hex digit", char)
		}
		sb.WriteString(bits)
	}
	return sb.String(), nil
}

// HasLeadingZeros reports whether the binary form of hexString starts with n zero bits.
func HasLeadingZeros(hexString string, n int) bool {
	if n <= 0 {
		return true
	}
	binary, err := HexToBinary(hexString)
	if err != nil || len(binary) < n {
		return false
	}
	return strings.Count(binary[:n], "0") == n
}
