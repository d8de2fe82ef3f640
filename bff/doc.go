// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bff implements the BFF tape machine: a self-modifying
// Brainfuck dialect in which code and data share a single fixed-size
// circular tape.  A program is any sequence of bytes; the seven byte
// values < > + - , [ ] are instructions and everything else is a no-op,
// so every tape is executable by construction.
//
// Two variants share the same semantics.  Run operates on 64-bit Token
// cells whose upper bits carry lineage metadata (an id assigned at cell
// creation and the epoch of creation); arithmetic touches only the low
// char byte, while the copy instruction moves whole tokens, so lineage
// tags ride along with replicated code.  RunBytes is the lineage-free
// variant with single-byte cells.
//
// Execution is bounded by MaxSteps and by the bracket stack depth;
// there is no error state.  Bracket pairing is resolved dynamically at
// run time, never pre-scanned, because the program may rewrite itself
// under the instruction pointer.
package bff
