package rs

import (
	"bytes"
	"fmt"

	"github.com/gogo/protobuf/proto"
	"golang.org/x/crypto/sha3"

	"github.com/wanqizhu/finitefield/field"
)

// Codewords travel in a small protobuf-framed envelope assembled by hand:
//
//	field 1, bytes:  SHA3-256 digest of the code parameters
//	field 2, varint: symbol count
//	field 3, bytes:  the symbol ranks, varint packed
//
// The digest pins a codeword to the exact code that produced it, so a
// receiver configured differently rejects it instead of decoding garbage.

const (
	tagDigest  = 1<<3 | 2
	tagCount   = 2<<3 | 0
	tagSymbols = 3<<3 | 2
)

// ParamsDigest returns the SHA3-256 digest identifying the code: p, m, the
// reduction polynomial, n, k and the evaluation point ranks, varint encoded
// in that order.
func (c *Code) ParamsDigest() [32]byte {
	buf := proto.NewBuffer(nil)
	buf.EncodeVarint(uint64(c.field.P()))
	buf.EncodeVarint(uint64(c.field.M()))
	for _, coef := range c.field.Reduction() {
		buf.EncodeVarint(uint64(coef))
	}
	buf.EncodeVarint(uint64(c.n))
	buf.EncodeVarint(uint64(c.k))
	for _, pt := range c.evalPoints {
		buf.EncodeVarint(uint64(pt.(*field.FiniteFieldElement).Rank()))
	}
	return sha3.Sum256(buf.Bytes())
}

// MarshalCodeword serializes a codeword together with the code's parameter
// digest.
func (c *Code) MarshalCodeword(codeword []field.Element) ([]byte, error) {
	if len(codeword) != c.n {
		return nil, fmt.Errorf("expected a codeword of length %d, got %d", c.n, len(codeword))
	}

	symbols := proto.NewBuffer(nil)
	for i, sym := range codeword {
		elem, ok := sym.(*field.FiniteFieldElement)
		if !ok || elem.Field() != c.field {
			return nil, fmt.Errorf("symbol %d is not from the code's field", i)
		}
		symbols.EncodeVarint(uint64(elem.Rank()))
	}

	digest := c.ParamsDigest()
	buf := proto.NewBuffer(nil)
	buf.EncodeVarint(tagDigest)
	buf.EncodeRawBytes(digest[:])
	buf.EncodeVarint(tagCount)
	buf.EncodeVarint(uint64(c.n))
	buf.EncodeVarint(tagSymbols)
	buf.EncodeRawBytes(symbols.Bytes())
	return buf.Bytes(), nil
}

// UnmarshalCodeword parses data produced by MarshalCodeword. Envelopes from
// a code with different parameters, with the wrong symbol count, with
// symbol ranks outside the field or with truncated payloads are all
// rejected.
func (c *Code) UnmarshalCodeword(data []byte) ([]field.Element, error) {
	var digest []byte
	var count uint64
	var symbolData []byte
	var haveCount bool

	buf := proto.NewBuffer(data)
	for {
		tag, err := buf.DecodeVarint()
		if err != nil {
			// end of buffer
			break
		}
		switch tag {
		case tagDigest:
			digest, err = buf.DecodeRawBytes(true)
		case tagCount:
			count, err = buf.DecodeVarint()
			haveCount = true
		case tagSymbols:
			symbolData, err = buf.DecodeRawBytes(true)
		default:
			return nil, fmt.Errorf("unexpected wire tag %d", tag)
		}
		if err != nil {
			return nil, fmt.Errorf("truncated envelope: %v", err)
		}
	}

	want := c.ParamsDigest()
	if !bytes.Equal(digest, want[:]) {
		return nil, fmt.Errorf("parameter digest mismatch: the codeword belongs to a different code")
	}
	if !haveCount || count != uint64(c.n) {
		return nil, fmt.Errorf("expected %d symbols, got %d", c.n, count)
	}
	if symbolData == nil {
		return nil, fmt.Errorf("envelope carries no symbols")
	}

	codeword := make([]field.Element, 0, c.n)
	symbols := proto.NewBuffer(symbolData)
	for len(codeword) < c.n {
		rank, err := symbols.DecodeVarint()
		if err != nil {
			return nil, fmt.Errorf("truncated symbols: %v", err)
		}
		if rank >= uint64(c.field.Order()) {
			return nil, fmt.Errorf("symbol %d has rank %d, outside a field of order %d", len(codeword), rank, c.field.Order())
		}
		codeword = append(codeword, c.field.FromRank(int(rank)))
	}
	return codeword, nil
}
