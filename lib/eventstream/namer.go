// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

import (
	"strconv"
	"sync"

	"github.com/bureau-foundation/buildevent/lib/sharedset"
)

// GroupNamer assigns stream-scoped identifiers to artifact set
// nodes. The first request for a node allocates its ID; every later
// request returns the same ID. Implementations must be safe for
// concurrent use.
type GroupNamer interface {
	IDFor(node sharedset.Node) GroupID
}

// CountingNamer names nodes with a decimal counter in allocation
// order. The registry only grows: entries are never evicted, so a
// reference handed out early in a stream stays resolvable for the
// stream's whole life.
//
// Reads of already-named nodes take a shared lock and run
// concurrently; only first encounters serialize on the write lock.
type CountingNamer struct {
	mu   sync.RWMutex
	ids  map[sharedset.Node]GroupID
	next uint64
}

// NewCountingNamer creates an empty namer.
func NewCountingNamer() *CountingNamer {
	return &CountingNamer{
		ids: make(map[sharedset.Node]GroupID),
	}
}

// IDFor returns the node's ID, allocating one on first encounter.
func (n *CountingNamer) IDFor(node sharedset.Node) GroupID {
	id, _ := n.Claim(node)
	return id
}

// Claim returns the node's ID and whether this call was the first
// encounter. The claim latches atomically: among concurrent callers
// exactly one observes fresh=true, which makes it responsible for
// emitting the node's event.
func (n *CountingNamer) Claim(node sharedset.Node) (id GroupID, fresh bool) {
	n.mu.RLock()
	id, known := n.ids[node]
	n.mu.RUnlock()
	if known {
		return id, false
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	// Another claimer may have won between the two locks.
	if id, known := n.ids[node]; known {
		return id, false
	}
	id = GroupID(strconv.FormatUint(n.next, 10))
	n.next++
	n.ids[node] = id
	return id, true
}

// Len returns the number of named nodes.
func (n *CountingNamer) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.ids)
}
