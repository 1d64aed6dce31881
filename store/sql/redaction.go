package sqlstore

import (
	"strings"

	"github.com/goliatone/go-connectors/core"
)

// credentialKeyFragments mark property keys that carry credential material.
// Keys are lowercased and "-" and " " are folded to "_" before matching.
var credentialKeyFragments = [...]string{
	"password",
	"secret",
	"token",
	"authorization",
	"api_key",
	"apikey",
	"access_key",
	"refresh",
	"credential",
	"client_id",
	"signature",
}

var propertyKeyFolder = strings.NewReplacer("-", "_", " ", "_")

// RedactProperties returns a copy of tracking properties safe to persist.
// Values under credential-looking keys become core.SecretMask, at any depth.
func RedactProperties(properties map[string]any) map[string]any {
	out := make(map[string]any, len(properties))
	for key, value := range properties {
		out[key] = redactProperty(key, value)
	}
	return out
}

func redactProperty(key string, value any) any {
	if looksLikeCredential(key) {
		return core.SecretMask
	}
	switch typed := value.(type) {
	case map[string]any:
		return RedactProperties(typed)
	case []any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = redactProperty("", item)
		}
		return items
	default:
		return value
	}
}

func looksLikeCredential(key string) bool {
	key = propertyKeyFolder.Replace(strings.ToLower(strings.TrimSpace(key)))
	if key == "" {
		return false
	}
	for _, fragment := range credentialKeyFragments {
		if strings.Contains(key, fragment) {
			return true
		}
	}
	return false
}
