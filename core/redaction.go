package core

// SecretMask replaces every credential value a masking injection would have
// written. It is the same for every field regardless of the original type.
const SecretMask = "******"

// MaskParameters returns a copy of params with every value replaced by
// SecretMask. The key set is preserved.
func MaskParameters(params map[string]any) map[string]any {
	masked := make(map[string]any, len(params))
	for key := range params {
		masked[key] = SecretMask
	}
	return masked
}
