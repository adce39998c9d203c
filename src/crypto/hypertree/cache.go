package hypertree

import (
	"sync"

	"github.com/dirac-core/go/src/crypto/lamport"
)

// defaultLeafCacheSize bounds how many re-derived leaf keypairs a
// private key keeps around. Re-deriving a leaf costs 2L digests, so a
// small cache pays off whenever messages revisit leaves.
const defaultLeafCacheSize = 64

type leafPair struct {
	sk *lamport.PrivateKey
	pk *lamport.PublicKey
}

// leafCache is an LRU over leaf index -> re-derived keypair, held
// inside the private key. Safe for concurrent use.
type leafCache struct {
	capacity int
	mu       sync.Mutex
	cache    map[uint64]*cacheNode
	head     *cacheNode
	tail     *cacheNode
}

type cacheNode struct {
	leaf uint64
	pair *leafPair
	prev *cacheNode
	next *cacheNode
}

func newLeafCache(capacity int) *leafCache {
	return &leafCache{
		capacity: capacity,
		cache:    make(map[uint64]*cacheNode),
	}
}

func (l *leafCache) get(leaf uint64) (*leafPair, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if node, found := l.cache[leaf]; found {
		l.moveToFront(node)
		return node.pair, true
	}
	return nil, false
}

func (l *leafCache) put(leaf uint64, pair *leafPair) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if node, found := l.cache[leaf]; found {
		node.pair = pair
		l.moveToFront(node)
		return
	}

	node := &cacheNode{leaf: leaf, pair: pair}
	l.cache[leaf] = node

	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	if len(l.cache) > l.capacity {
		l.evict()
	}
}

// evict drops the least recently used keypair.
func (l *leafCache) evict() {
	if l.tail == nil {
		return
	}
	delete(l.cache, l.tail.leaf)
	l.tail = l.tail.prev
	if l.tail != nil {
		l.tail.next = nil
	}
}

func (l *leafCache) moveToFront(node *cacheNode) {
	if node == l.head {
		return
	}
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}
