// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package soup hosts a population of BFF half-tapes and evolves it in
// epochs.  Each epoch shuffles the population into random pairs,
// executes every pair in place on the bff interpreter across a
// persistent worker pool, then scatters a Poisson-sampled number of
// random byte mutations.  Lineage ids assigned at cell creation let the
// statistics engine track which code families are taking over the
// arena.
//
// The arena, the PRNG, the pairing permutation and the worker pool all
// hang off a single Soup value with a strict init/epoch/teardown
// lifecycle.  Outside Epoch the driver goroutine has exclusive access;
// during Epoch ownership of disjoint pair ranges passes to the workers,
// and the two barriers bounding the epoch are the only synchronization.
package soup
