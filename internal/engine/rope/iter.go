package rope

// chunkIterFrame represents a position in the tree traversal for chunk iteration.
type chunkIterFrame struct {
	node *Node
	idx  int // Next child or chunk index to visit
}

// ChunkIterator iterates over chunks in a rope in document order.
type ChunkIterator struct {
	stack      []chunkIterFrame
	chunk      Chunk
	chunkStart int // Character offset of the current chunk
	next       int // Character offset of the chunk after the current one
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]chunkIterFrame, 0, 16)}
	if r.root != nil {
		it.stack = append(it.stack, chunkIterFrame{node: r.root})
	}
	return it
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.idx < len(node.chunks) {
				it.chunk = node.chunks[frame.idx]
				frame.idx++
				it.chunkStart = it.next
				it.next += it.chunk.Len()
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if frame.idx < len(node.children) {
			child := node.children[frame.idx]
			frame.idx++
			it.stack = append(it.stack, chunkIterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the character offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.chunkStart
}
