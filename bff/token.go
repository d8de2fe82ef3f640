// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bff

// Token is one tape cell.  Layout, high to low:
//
//	[id:32][epoch:16][reserved:8][char:8]
//
// The char field is the byte dispatched as an instruction and the
// target of arithmetic.  The id field identifies the lineage the cell
// was created into (initial fill or mutation); epoch records when.  The
// field widths are observable behavior: epoch wraps at 2^16 and id at
// 2^32.
type Token uint64

const (
	charMask  = 0xff
	epochBits = 16
	idBits    = 32
)

// MakeToken assembles a token from its fields.
func MakeToken(id uint32, epoch uint16, char byte) Token {
	return Token(id)<<idBits | Token(epoch)<<epochBits | Token(char)
}

// Char returns the instruction/data byte.
func (t Token) Char() byte { return byte(t & charMask) }

// Epoch returns the epoch at which the cell was created.
func (t Token) Epoch() uint16 { return uint16(t >> epochBits) }

// ID returns the lineage identifier.
func (t Token) ID() uint32 { return uint32(t >> idBits) }

// WithChar returns t with the char field replaced and every other
// field, id and epoch included, preserved exactly.  This is the write
// primitive used by the + and - instructions; lineage survives
// in-program arithmetic.
func (t Token) WithChar(char byte) Token {
	return (t &^ charMask) | Token(char)
}
