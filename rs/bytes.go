package rs

import (
	"fmt"

	"github.com/wanqizhu/finitefield/field"
)

// EncodeBytes protects a byte message: the bytes are packed into field
// elements at the field's data width, split into length-k blocks with a
// zero-padded tail, and each block is encoded into its own codeword.
// DecodeBytes with the original byte length reverses all of it.
func (c *Code) EncodeBytes(msg []byte) ([][]field.Element, error) {
	if len(msg) == 0 {
		return nil, fmt.Errorf("message is empty")
	}

	elems := c.field.PackBits(msg)
	var codewords [][]field.Element
	for start := 0; start < len(elems); start += c.k {
		block := make([]field.Element, c.k)
		filled := copy(block, elems[start:])
		for i := filled; i < c.k; i++ {
			block[i] = c.field.Zero()
		}
		codeword, err := c.Encode(block)
		if err != nil {
			return nil, err
		}
		codewords = append(codewords, codeword)
	}
	return codewords, nil
}

// DecodeBytes decodes every codeword and unpacks the recovered elements
// back into byteLen bytes. Each codeword tolerates up to MaxErrors
// corrupted symbols of its own.
func (c *Code) DecodeBytes(codewords [][]field.Element, byteLen int) ([]byte, error) {
	if byteLen <= 0 {
		return nil, fmt.Errorf("byte length must be positive, got %d", byteLen)
	}
	width := c.field.BitsPerDataElement()
	needed := (byteLen*8 + width - 1) / width
	if needed > len(codewords)*c.k {
		return nil, fmt.Errorf("%d codewords of %d symbols cannot hold %d bytes", len(codewords), c.k, byteLen)
	}

	elems := make([]field.Element, 0, len(codewords)*c.k)
	for i, codeword := range codewords {
		message, err := c.Decode(codeword)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		elems = append(elems, message...)
	}
	return c.field.UnpackBits(elems, byteLen*8)
}
