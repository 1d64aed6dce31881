package catalog

import "fmt"

// ToAPISyncMode maps a protocol sync mode to its API counterpart by name.
func ToAPISyncMode(mode SyncMode) (APISyncMode, error) {
	switch mode {
	case SyncModeFullRefresh:
		return APISyncModeFullRefresh, nil
	case SyncModeIncremental:
		return APISyncModeIncremental, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnmappedSyncMode, string(mode))
	}
}

// ToProtocolSyncMode maps an API sync mode to its protocol counterpart by name.
func ToProtocolSyncMode(mode APISyncMode) (SyncMode, error) {
	switch mode {
	case APISyncModeFullRefresh:
		return SyncModeFullRefresh, nil
	case APISyncModeIncremental:
		return SyncModeIncremental, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnmappedSyncMode, string(mode))
	}
}

func ToAPISyncModes(modes []SyncMode) ([]APISyncMode, error) {
	if modes == nil {
		return nil, nil
	}
	out := make([]APISyncMode, 0, len(modes))
	for _, mode := range modes {
		mapped, err := ToAPISyncMode(mode)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}

func ToProtocolSyncModes(modes []APISyncMode) ([]SyncMode, error) {
	if modes == nil {
		return nil, nil
	}
	out := make([]SyncMode, 0, len(modes))
	for _, mode := range modes {
		mapped, err := ToProtocolSyncMode(mode)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}
