package slip10

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// H is the offset added to derivation indexes to indicate that the
	// hardened formula should be used. Callers form hardened indexes as
	// H + userIndex for user indexes below 2^31.
	H uint32 = 1 << 31

	// maxPathLen caps the number of components accepted in a path.
	maxPathLen = 1048576

	hardenedSuffix = "'"
)

// IsHardened returns true iff the index selects hardened derivation.
func IsHardened(index uint32) bool {
	return index >= H
}

// NewHardenedIndex returns H + userIndex, or ErrIndexOutOfRange if
// userIndex does not fit in 31 bits and the sum would overflow.
func NewHardenedIndex(userIndex uint32) (uint32, error) {
	if userIndex >= H {
		return 0, fmt.Errorf("%w: hardened user index %d", ErrIndexOutOfRange, userIndex)
	}
	return H + userIndex, nil
}

// NewNonHardenedIndex returns userIndex, or ErrIndexOutOfRange if it
// has bit 31 set.
func NewNonHardenedIndex(userIndex uint32) (uint32, error) {
	if userIndex >= H {
		return 0, fmt.Errorf("%w: non-hardened user index %d", ErrIndexOutOfRange, userIndex)
	}
	return userIndex, nil
}

// Path is an ordered sequence of derivation indexes, root to leaf.
// Order is semantically significant: [a, b] and [b, a] generally
// produce unrelated keys.
type Path []uint32

// ParsePath parses a path of the form "m/44'/474'/0" into derivation
// indexes. The leading "m" component is optional, and the "'" suffix
// marks a hardened component. An empty string parses to an empty path.
func ParsePath(path string) (Path, error) {
	if path == "" || path == "m" {
		return Path{}, nil
	}
	path = strings.TrimPrefix(path, "m/")

	splitPath := strings.Split(path, "/")
	if len(splitPath) > maxPathLen {
		return nil, fmt.Errorf("slip10: path length over permitted maximum")
	}

	indexes := make(Path, 0, len(splitPath))
	for _, pathEntry := range splitPath {
		isHardened := strings.HasSuffix(pathEntry, hardenedSuffix)
		s := strings.TrimSuffix(pathEntry, hardenedSuffix)
		i, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("slip10: path component '%s': %w", pathEntry, err)
		}
		if uint32(i) >= H {
			return nil, fmt.Errorf("slip10: path component '%s': %w", pathEntry, ErrIndexOutOfRange)
		}
		idx := uint32(i)
		if isHardened {
			idx += H
		}
		indexes = append(indexes, idx)
	}

	return indexes, nil
}

// String returns the path in "m/44'/0" notation.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, idx := range p {
		sb.WriteString("/")
		if IsHardened(idx) {
			sb.WriteString(strconv.FormatUint(uint64(idx-H), 10))
			sb.WriteString(hardenedSuffix)
		} else {
			sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return sb.String()
}

// Derive applies the path to the key, index by index, returning the key
// at the leaf. An empty path returns the key unchanged. Derivation
// aborts at the first failing index; the returned error reports the
// position within the path.
func (k *ExtendedSecretKey) Derive(path Path) (*ExtendedSecretKey, error) {
	ret := k
	for pos, idx := range path {
		var err error
		if ret, err = ret.DeriveChild(idx); err != nil {
			return nil, fmt.Errorf("slip10: path position %d: %w", pos, err)
		}
	}
	return ret, nil
}

// DerivePath parses the path string and applies it to the key.
func (k *ExtendedSecretKey) DerivePath(path string) (*ExtendedSecretKey, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return k.Derive(indexes)
}

// Derive applies the path to the key, index by index, returning the key
// at the leaf. Any hardened index in the path fails the walk with
// ErrHardenedFromPublic at its position.
func (k *ExtendedPublicKey) Derive(path Path) (*ExtendedPublicKey, error) {
	ret := k
	for pos, idx := range path {
		var err error
		if ret, err = ret.DeriveChild(idx); err != nil {
			return nil, fmt.Errorf("slip10: path position %d: %w", pos, err)
		}
	}
	return ret, nil
}

// DerivePath parses the path string and applies it to the key.
func (k *ExtendedPublicKey) DerivePath(path string) (*ExtendedPublicKey, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return k.Derive(indexes)
}

// Derive applies the path to the key pair, index by index, returning
// the pair at the leaf.
func (kp *ExtendedKeyPair) Derive(path Path) (*ExtendedKeyPair, error) {
	ret := kp
	for pos, idx := range path {
		var err error
		if ret, err = ret.DeriveChild(idx); err != nil {
			return nil, fmt.Errorf("slip10: path position %d: %w", pos, err)
		}
	}
	return ret, nil
}

// DerivePath parses the path string and applies it to the key pair.
func (kp *ExtendedKeyPair) DerivePath(path string) (*ExtendedKeyPair, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return kp.Derive(indexes)
}
