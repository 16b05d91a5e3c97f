package bls

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEncoding is returned when key or signature bytes have the wrong
	// length, invalid compression flags or a coordinate outside the base field
	ErrMalformedEncoding = errors.New("malformed encoding")
	// ErrInvalidPoint is returned when bytes are well formed but do not describe
	// a usable curve point (off-curve, identity or outside the subgroup)
	ErrInvalidPoint = errors.New("invalid point")
	// ErrSignatureMismatch is returned when a decoded signature does not verify
	ErrSignatureMismatch = errors.New("signature mismatch")
	// ErrInvalidSecretKey is returned when a secret key scalar is zero or out of range
	ErrInvalidSecretKey = errors.New("invalid secret key")
)

// Kind classifies a BLS error.
type Kind uint8

const (
	KindMalformedEncoding Kind = iota + 1
	KindInvalidPoint
	KindSignatureMismatch
	KindInvalidSecretKey
)

func (k Kind) String() string {
	switch k {
	case KindMalformedEncoding:
		return "malformed_encoding"
	case KindInvalidPoint:
		return "invalid_point"
	case KindSignatureMismatch:
		return "signature_mismatch"
	case KindInvalidSecretKey:
		return "invalid_secret_key"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindMalformedEncoding:
		return ErrMalformedEncoding
	case KindInvalidPoint:
		return ErrInvalidPoint
	case KindSignatureMismatch:
		return ErrSignatureMismatch
	case KindInvalidSecretKey:
		return ErrInvalidSecretKey
	default:
		return nil
	}
}

// status is the outcome of a call into blst, as observed by this package.
type status uint8

const (
	statusSuccess status = iota
	statusBadLength
	statusBadFlags
	statusBadEncoding
	statusNotOnCurve
	statusPointIsInfinity
	statusNotInGroup
	statusBadScalar
	statusShortIKM
	statusVerifyFail
)

var statusText = map[status]string{
	statusBadLength:       "unexpected length",
	statusBadFlags:        "invalid compression flags",
	statusBadEncoding:     "coordinate is not below the field modulus",
	statusNotOnCurve:      "point is not on the curve",
	statusPointIsInfinity: "point is the identity",
	statusNotInGroup:      "point is not in the prime order subgroup",
	statusBadScalar:       "scalar is zero or not below the group order",
	statusShortIKM:        "key material shorter than 32 bytes",
	statusVerifyFail:      "pairing check failed",
}

// statusKinds is the only place blst outcomes are translated into error kinds.
var statusKinds = map[status]Kind{
	statusBadLength:       KindMalformedEncoding,
	statusBadFlags:        KindMalformedEncoding,
	statusBadEncoding:     KindMalformedEncoding,
	statusNotOnCurve:      KindInvalidPoint,
	statusPointIsInfinity: KindInvalidPoint,
	statusNotInGroup:      KindInvalidPoint,
	statusBadScalar:       KindInvalidSecretKey,
	statusShortIKM:        KindInvalidSecretKey,
	statusVerifyFail:      KindSignatureMismatch,
}

// Error is returned by every fallible operation in this package. It matches its
// kind's sentinel with errors.Is.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "decode public key"
	Op     string
	status status
}

func (e *Error) Error() string {
	reason := "unknown"
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		reason = sentinel.Error()
	}
	return fmt.Sprintf("bls: %s: %s: %s", e.Op, reason, statusText[e.status])
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(op string, s status) error {
	kind, ok := statusKinds[s]
	if !ok {
		panic(fmt.Sprintf("bls: no error kind for status %d", s))
	}
	return &Error{Kind: kind, Op: op, status: s}
}

// KindOf returns the kind of a BLS error anywhere in err's chain, or zero if
// err does not come from this package.
func KindOf(err error) Kind {
	var blsErr *Error
	if errors.As(err, &blsErr) {
		return blsErr.Kind
	}
	return 0
}
