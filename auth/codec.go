package auth

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// scalarSize is the byte length of a P-256 field element.
const scalarSize = 32

// RawSignatureSize is the length of a raw r||s signature as sent on the wire.
const RawSignatureSize = 2 * scalarSize

// DERToRaw converts an ASN.1 DER ECDSA signature (SEQUENCE { INTEGER r,
// INTEGER s }) into the fixed-width form: r and s as 32-byte big-endian
// values, left-padded with zeros, concatenated.
func DERToRaw(der []byte) ([]byte, error) {
	var (
		inner cryptobyte.String
		r     = new(big.Int)
		s     = new(big.Int)
	)

	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() ||
		!inner.ReadASN1Integer(r) || !inner.ReadASN1Integer(s) || !inner.Empty() {
		return nil, fmt.Errorf("%w: not a DER sequence of two integers", ErrMalformedSignature)
	}

	raw := make([]byte, RawSignatureSize)

	if err := putScalar(raw[:scalarSize], r); err != nil {
		return nil, err
	}

	if err := putScalar(raw[scalarSize:], s); err != nil {
		return nil, err
	}

	return raw, nil
}

// RawToDER converts a 64-byte r||s signature into ASN.1 DER. Each half is
// stripped of leading zero bytes (keeping at least one) and prefixed with
// 0x00 when its high bit is set.
func RawToDER(raw []byte) ([]byte, error) {
	if len(raw) != RawSignatureSize {
		return nil, fmt.Errorf("%w: raw signature must be %d bytes, got %d", ErrMalformedSignature, RawSignatureSize, len(raw))
	}

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addASN1Scalar(b, raw[:scalarSize])
		addASN1Scalar(b, raw[scalarSize:])
	})

	der, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	return der, nil
}

// putScalar writes v into dst as a fixed-width big-endian unsigned integer.
func putScalar(dst []byte, v *big.Int) error {
	if v.Sign() < 0 {
		return fmt.Errorf("%w: negative integer", ErrMalformedSignature)
	}

	if v.BitLen() > len(dst)*8 {
		return fmt.Errorf("%w: integer exceeds %d bytes", ErrMalformedSignature, len(dst))
	}

	v.FillBytes(dst)

	return nil
}

func addASN1Scalar(b *cryptobyte.Builder, v []byte) {
	for len(v) > 1 && v[0] == 0 {
		v = v[1:]
	}

	b.AddASN1(asn1.INTEGER, func(b *cryptobyte.Builder) {
		if v[0]&0x80 != 0 {
			b.AddUint8(0)
		}
		b.AddBytes(v)
	})
}
