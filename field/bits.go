package field

import "fmt"

// Byte streams are mapped onto field elements through their ranks: a chunk
// of bits, read big endian, is the rank of one element. The data width is
// chosen so every chunk value names a valid element, which costs a fraction
// of a bit per element for fields whose order is not a power of two.

// BitsPerElement returns the number of bits needed to address every element
// rank, ceil(log2(q)).
func (f *FiniteField) BitsPerElement() int {
	bits := 0
	for v := f.q - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}

// BitsPerDataElement returns the number of payload bits one element can
// carry losslessly: the widest w with 2^w <= q.
func (f *FiniteField) BitsPerDataElement() int {
	bits := 0
	for v := f.q; v > 1; v >>= 1 {
		bits++
	}
	return bits
}

// PackBits slices data into BitsPerDataElement sized chunks, big endian bit
// order, and lifts each chunk to the element with that rank. The tail is
// padded with zero bits up to a whole element. UnpackBits with the original
// bit length reverses the mapping.
func (f *FiniteField) PackBits(data []byte) []Element {
	w := f.BitsPerDataElement()
	totalBits := len(data) * 8
	count := (totalBits + w - 1) / w

	result := make([]Element, count)
	for i := 0; i < count; i++ {
		rank := 0
		for bit := 0; bit < w; bit++ {
			srcBit := i*w + bit
			rank <<= 1
			srcByte := srcBit / 8
			if srcByte < len(data) && data[srcByte]&(1<<(7-srcBit%8)) != 0 {
				rank |= 1
			}
		}
		result[i] = f.fromRank(rank)
	}
	return result
}

// UnpackBits reassembles bitLen bits from the ranks of the given elements.
// An element whose rank does not fit the data width cannot have come from
// PackBits and is rejected.
func (f *FiniteField) UnpackBits(elems []Element, bitLen int) ([]byte, error) {
	w := f.BitsPerDataElement()
	if bitLen < 0 {
		return nil, fmt.Errorf("bit length must be non-negative, got %d", bitLen)
	}
	if bitLen > len(elems)*w {
		return nil, fmt.Errorf("%d elements of %d bits cannot hold %d bits", len(elems), w, bitLen)
	}

	result := make([]byte, (bitLen+7)/8)
	for i, e := range elems {
		elem, ok := e.(*FiniteFieldElement)
		if !ok || elem.field.q != f.q {
			return nil, fmt.Errorf("element %d is not from this field", i)
		}
		rank := elem.rank()
		if rank >= 1<<w {
			return nil, fmt.Errorf("element %d has rank %d, beyond the %d bit data width", i, rank, w)
		}
		for bit := 0; bit < w; bit++ {
			dstBit := i*w + bit
			if dstBit >= bitLen {
				break
			}
			if rank&(1<<(w-1-bit)) != 0 {
				result[dstBit/8] |= 1 << (7 - dstBit%8)
			}
		}
	}
	return result, nil
}
