package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
// Nodes are never mutated after construction; empty chunks and empty
// children are never stored.
type Node struct {
	height  uint8       // 0 for leaves, >0 for internal
	summary TextSummary // Aggregated metrics for entire subtree

	children []*Node // Internal node fields (height > 0)
	chunks   []Chunk // Leaf node fields (height == 0)
}

// newLeafNode creates an empty leaf node.
func newLeafNode() *Node {
	return &Node{}
}

// newLeafNodeWithChunks creates a leaf node with the given chunks.
// Empty chunks are dropped.
func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: make([]Chunk, 0, len(chunks))}
	for _, c := range chunks {
		if c.IsEmpty() {
			continue
		}
		n.chunks = append(n.chunks, c)
		n.summary = n.summary.Add(c.Summary())
	}
	return n
}

// newInternalNode creates an internal node with the given children.
// Empty children are dropped.
func newInternalNode(children []*Node) *Node {
	n := &Node{children: make([]*Node, 0, len(children))}
	var height uint8
	for _, child := range children {
		if child == nil || child.summary.IsZero() {
			continue
		}
		n.children = append(n.children, child)
		n.summary = n.summary.Add(child.summary)
		height = max(height, child.height)
	}
	if len(n.children) == 0 {
		return newLeafNode()
	}
	n.height = height + 1
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the character count of text in this subtree.
func (n *Node) Len() int {
	return n.summary.Chars
}

// LineCount returns the number of lines in this subtree.
func (n *Node) LineCount() int {
	return n.summary.Lines + 1
}

// appendTo appends all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// textInRange extracts text in the character range [start, end).
func (n *Node) textInRange(start, end int) string {
	start = max(start, 0)
	end = min(end, n.Len())
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	n.appendRange(&sb, start, end)
	return sb.String()
}

// appendRange appends text in the character range to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	offset := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Len()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			sb.WriteString(chunk.Slice(max(start-offset, 0), min(end, chunkEnd)-offset))
			offset = chunkEnd
		}
		return
	}

	for _, child := range n.children {
		childEnd := offset + child.Len()
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, max(start-offset, 0), min(end, childEnd)-offset)
		offset = childEnd
	}
}

// split splits the node at the given character offset.
// Returns two nodes: left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n
	}
	if offset >= n.Len() {
		return n, newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

// splitLeaf splits a leaf node at the given offset.
func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		chunkLen := chunk.Len()
		switch {
		case current+chunkLen <= offset:
			leftChunks = append(leftChunks, chunk)
		case current >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(offset - current)
			leftChunks = append(leftChunks, left)
			rightChunks = append(rightChunks, right)
		}
		current += chunkLen
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

// splitInternal splits an internal node at the given offset.
func (n *Node) splitInternal(offset int) (*Node, *Node) {
	current := 0
	for i, child := range n.children {
		childLen := child.Len()
		if current+childLen <= offset {
			current += childLen
			continue
		}

		if current == offset {
			return buildNodeFromChildren(n.children[:i]), buildNodeFromChildren(n.children[i:])
		}

		l, r := child.split(offset - current)
		left := concat(buildNodeFromChildren(n.children[:i]), l)
		right := concat(r, buildNodeFromChildren(n.children[i+1:]))
		return left, right
	}
	return n, newLeafNode()
}

// buildNodeFromChildren creates a balanced tree from a list of child nodes.
// The input slice is not retained.
func buildNodeFromChildren(children []*Node) *Node {
	switch {
	case len(children) == 0:
		return newLeafNode()
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternalNode(children)
	}

	groups := (len(children) + MaxChildren - 1) / MaxChildren
	size := (len(children) + groups - 1) / groups
	parents := make([]*Node, 0, groups)
	for i := 0; i < len(children); i += size {
		end := min(i+size, len(children))
		parents = append(parents, newInternalNode(children[i:end]))
	}
	return buildNodeFromChildren(parents)
}

// concat concatenates two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.summary.IsZero() {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.summary.IsZero() {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	// Descend the taller spine so the shorter tree joins at a matching level.
	if left.height > right.height {
		last := len(left.children) - 1
		joined := concat(left.children[last], right)
		return rebuild(left.children[:last], joined, nil)
	}
	if right.height > left.height {
		joined := concat(left, right.children[0])
		return rebuild(nil, joined, right.children[1:])
	}

	return mergeNodes(left, right)
}

// rebuild assembles prefix, mid and suffix children into one node.
// When mid grew a level taller than its siblings, its children are
// spliced in place of it.
func rebuild(prefix []*Node, mid *Node, suffix []*Node) *Node {
	var siblingHeight uint8
	switch {
	case len(prefix) > 0:
		siblingHeight = prefix[0].height
	case len(suffix) > 0:
		siblingHeight = suffix[0].height
	default:
		return mid
	}

	all := make([]*Node, 0, len(prefix)+len(suffix)+MaxChildren)
	all = append(all, prefix...)
	if mid.height > siblingHeight && !mid.IsLeaf() {
		all = append(all, mid.children...)
	} else {
		all = append(all, mid)
	}
	all = append(all, suffix...)
	return buildNodeFromChildren(all)
}

// concatLeaves concatenates two leaf nodes, merging the boundary chunks
// when they fit in a single chunk.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)

	rest := right.chunks
	if len(chunks) > 0 && len(rest) > 0 {
		last := chunks[len(chunks)-1]
		if last.Summary().Bytes+rest[0].Summary().Bytes <= MaxChunkSize {
			chunks[len(chunks)-1] = NewChunk(last.String() + rest[0].String())
			rest = rest[1:]
		}
	}
	chunks = append(chunks, rest...)

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNodeWithChunks(chunks)
	}

	mid := len(chunks) / 2
	return newInternalNode([]*Node{
		newLeafNodeWithChunks(chunks[:mid]),
		newLeafNodeWithChunks(chunks[mid:]),
	})
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}

// offsetAfterNewline returns the character offset just past the k-th
// newline (1-indexed) in this subtree, or -1 if there are fewer.
func (n *Node) offsetAfterNewline(k int) int {
	if k <= 0 || k > n.summary.Lines {
		return -1
	}

	offset := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			lines := chunk.Summary().Lines
			if k <= lines {
				return offset + chunk.offsetAfterNewline(k)
			}
			k -= lines
			offset += chunk.Len()
		}
		return -1
	}

	for _, child := range n.children {
		lines := child.summary.Lines
		if k <= lines {
			return offset + child.offsetAfterNewline(k)
		}
		k -= lines
		offset += child.Len()
	}
	return -1
}
