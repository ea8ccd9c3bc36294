package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is mixed into every derived key. Bump it when rendering
// changes in a way that invalidates stored artifacts.
const keyVersion = 1

// hashKey returns "<kind>:<sha256 of the JSON encoded parts>".
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(append([]any{keyVersion}, parts...))
	sum := sha256.Sum256(data)
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. Source images are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
