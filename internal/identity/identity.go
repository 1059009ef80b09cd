/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package identity implements the packed-decimal wire codec shared by the
// gateway server and its client: a 15-digit subscriber identity packed
// into 8 bytes, two nibbles per digit, with a 0xF padding sentinel in the
// low nibble of the last byte.
package identity

import (
	"fmt"
)

// Length is the number of decimal digits a subscriber identity carries.
const Length = 15

// PackedSize is the number of bytes the wire form occupies.
const PackedSize = 8

// padNibble is the only legal value for the low nibble of the last byte.
const padNibble = 0xF

// Encode packs a 15-digit decimal identity into its 8-byte wire form.
//
// byte i (0<=i<=6) holds (d[2i]<<4)|d[2i+1]; the high nibble of byte 7
// holds d[14]; the low nibble of byte 7 is the padding sentinel 0xF.
func Encode(id string) ([PackedSize]byte, error) {
	var out [PackedSize]byte

	if len(id) != Length {
		return out, fmt.Errorf("identity: want %d digits, got %d", Length, len(id))
	}

	digits := make([]byte, Length)
	for i := 0; i < Length; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return out, fmt.Errorf("identity: non-digit character %q at position %d", c, i)
		}
		digits[i] = c - '0'
	}

	for i := 0; i < 7; i++ {
		out[i] = digits[2*i]<<4 | digits[2*i+1]
	}
	out[7] = digits[14]<<4 | padNibble

	return out, nil
}

// Decode unpacks an 8-byte wire form back into its 15-digit decimal
// identity. It rejects inputs of the wrong length, any declared nibble
// greater than 9, and any byte-7 low nibble other than the 0xF padding
// sentinel.
func Decode(b []byte) (string, error) {
	if len(b) != PackedSize {
		return "", fmt.Errorf("identity: want %d bytes, got %d", PackedSize, len(b))
	}

	digits := make([]byte, 0, Length)
	for i := 0; i < 7; i++ {
		hi := b[i] >> 4
		lo := b[i] & 0x0F
		if hi > 9 || lo > 9 {
			return "", fmt.Errorf("identity: invalid nibble in byte %d (0x%02x)", i, b[i])
		}
		digits = append(digits, hi, lo)
	}

	last := b[7] >> 4
	pad := b[7] & 0x0F
	if last > 9 {
		return "", fmt.Errorf("identity: invalid nibble in byte 7 (0x%02x)", b[7])
	}
	if pad != padNibble {
		return "", fmt.Errorf("identity: byte 7 padding nibble is 0x%x, want 0x%x", pad, padNibble)
	}
	digits = append(digits, last)

	out := make([]byte, Length)
	for i, d := range digits {
		out[i] = '0' + d
	}
	return string(out), nil
}
