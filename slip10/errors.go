package slip10

import "errors"

var (
	// ErrInvalidSeed is the error returned when the seed byte sequence
	// is outside the 16-64 byte range permitted by SLIP-0010.
	ErrInvalidSeed = errors.New("slip10: invalid seed length")

	// ErrInvalidScalar is the error returned when a derived scalar is
	// zero or not less than the group order. The probability of this
	// occurring with an honest seed is negligible (~2^-128), and it is
	// surfaced rather than silently retried.
	ErrInvalidScalar = errors.New("slip10: derived scalar out of range")

	// ErrInvalidPoint is the error returned when public-only derivation
	// produces the group identity, or a point fails to decode.
	ErrInvalidPoint = errors.New("slip10: invalid point")

	// ErrHardenedFromPublic is the error returned when hardened
	// derivation is requested from an extended public key.
	ErrHardenedFromPublic = errors.New("slip10: hardened derivation requires the secret key")

	// ErrIndexOutOfRange is the error returned when a user index does
	// not fit in the 31 bits available to its kind.
	ErrIndexOutOfRange = errors.New("slip10: index out of range")

	// ErrInvalidKeyEncoding is the error returned when an encoded
	// extended key has the wrong size for the curve.
	ErrInvalidKeyEncoding = errors.New("slip10: invalid extended key encoding")
)
