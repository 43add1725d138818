// Package systems provides the simulation systems: movement, the quadtree
// spatial index and the collision detector built on it.
package systems

import "fmt"

// MaxLevels bounds the subdivision depth. Ten levels is 349,525 buckets;
// each further level multiplies the bucket array by four.
const MaxLevels = 10

// Point is a location in field space.
type Point struct {
	X, Y float64
}

// NodeHandle addresses a member node inside a QuadTree.
// Handles are never reused, so a handle stays valid after relocation and a
// stale handle can never alias a newer member.
type NodeHandle int32

// NoNode marks the end of a bucket list.
const NoNode NodeHandle = -1

type quadNode[T any] struct {
	member     T
	bucket     int32
	prev, next NodeHandle
	live       bool
}

// QuadTree is a fixed-depth linear quadtree. Every member lives in exactly one
// bucket: the smallest quadrant that fully contains its bounding box.
//
// Buckets are stored level-major in a flat array: bucket 0 is the root,
// buckets 1..4 are level 1, 5..20 level 2 and so on. Within a level the
// quadrant index is the Morton (Z-order) code of the quadrant's cell.
type QuadTree[T any] struct {
	width, height float64
	levels        int
	cellW, cellH  float64 // finest cell size
	gridMax       uint32  // largest finest-level cell coordinate

	offsets []int // offsets[k] = number of buckets in levels 0..k-1
	heads   []NodeHandle
	counts  []int
	nodes   []quadNode[T]
	size    int
}

// NewQuadTree creates an empty index over a width x height field.
// Panics if the dimensions are not positive or levels is outside [1, MaxLevels].
func NewQuadTree[T any](width, height float64, levels int) *QuadTree[T] {
	if !(width > 0) || !(height > 0) {
		panic(fmt.Sprintf("quadtree: invalid field %vx%v", width, height))
	}
	if levels < 1 || levels > MaxLevels {
		panic(fmt.Sprintf("quadtree: levels %d out of range [1, %d]", levels, MaxLevels))
	}

	offsets := make([]int, levels+1)
	for k, n := 1, 1; k <= levels; k, n = k+1, n*4 {
		offsets[k] = offsets[k-1] + n
	}
	total := offsets[levels]

	heads := make([]NodeHandle, total)
	for i := range heads {
		heads[i] = NoNode
	}

	grid := uint32(1) << uint(levels-1)
	return &QuadTree[T]{
		width:   width,
		height:  height,
		levels:  levels,
		cellW:   width / float64(grid),
		cellH:   height / float64(grid),
		gridMax: grid - 1,
		offsets: offsets,
		heads:   heads,
		counts:  make([]int, total),
	}
}

// Levels returns the subdivision depth.
func (q *QuadTree[T]) Levels() int { return q.levels }

// NumBuckets returns the total bucket count across all levels.
func (q *QuadTree[T]) NumBuckets() int { return len(q.heads) }

// Len returns the number of live members.
func (q *QuadTree[T]) Len() int { return q.size }

// BucketLen returns the number of members in bucket b.
func (q *QuadTree[T]) BucketLen(b int) int { return q.counts[b] }

// Occupancy returns a copy of the per-bucket member counts.
func (q *QuadTree[T]) Occupancy() []int {
	out := make([]int, len(q.counts))
	copy(out, q.counts)
	return out
}

// LevelOffset returns the flat index of the first bucket at level k.
func (q *QuadTree[T]) LevelOffset(k int) int { return q.offsets[k] }

// Level returns the subdivision level of bucket b.
func (q *QuadTree[T]) Level(b int) int {
	q.checkBucket(b)
	for k := 0; k < q.levels; k++ {
		if b < q.offsets[k+1] {
			return k
		}
	}
	panic("unreachable")
}

// Cell returns the field-space rectangle covered by bucket b.
func (q *QuadTree[T]) Cell(b int) (x, y, w, h float64) {
	level := q.Level(b)
	code := uint32(b - q.offsets[level])
	side := float64(uint32(1) << uint(level))
	w = q.width / side
	h = q.height / side
	return float64(compact(code)) * w, float64(compact(code>>1)) * h, w, h
}

// BucketFor returns the bucket a box with the given corners belongs to.
// It is a pure function of the corners and the tree configuration.
func (q *QuadTree[T]) BucketFor(upLeft, downRight Point) int {
	a := q.code(upLeft)
	b := q.code(downRight)

	// Each differing 2-bit group above the finest level moves the box one level up.
	level := q.levels - 1
	for diff := a ^ b; diff != 0; diff >>= 2 {
		level--
	}

	if level < 0 {
		panic(fmt.Sprintf("quadtree: corner codes %#x and %#x diverge above the root", a, b))
	}

	quadrant := int(a >> (2 * uint(q.levels-1-level)))
	idx := q.offsets[level] + quadrant
	if idx >= q.offsets[level+1] {
		panic(fmt.Sprintf("quadtree: bucket %d out of range for level %d", idx, level))
	}
	return idx
}

// Insert adds member with the given bounding corners and returns its handle.
func (q *QuadTree[T]) Insert(member T, upLeft, downRight Point) NodeHandle {
	h := NodeHandle(len(q.nodes))
	q.nodes = append(q.nodes, quadNode[T]{member: member, prev: NoNode, next: NoNode, live: true})
	q.link(h, q.BucketFor(upLeft, downRight))
	q.size++
	return h
}

// Remove unlinks the node in O(1). Removing an already removed node is a no-op.
// Panics on a handle this tree never issued.
func (q *QuadTree[T]) Remove(h NodeHandle) {
	q.checkHandle(h)
	if !q.nodes[h].live {
		return
	}
	q.unlink(h)
	q.nodes[h].live = false
	q.size--
}

// Relocate moves the node to the bucket matching its new corners.
// Returns true if the bucket changed. The handle stays valid either way.
func (q *QuadTree[T]) Relocate(h NodeHandle, upLeft, downRight Point) bool {
	q.checkLive(h)
	b := q.BucketFor(upLeft, downRight)
	if b == int(q.nodes[h].bucket) {
		return false
	}
	q.unlink(h)
	q.link(h, b)
	return true
}

// Live reports whether h refers to a node still in the tree.
func (q *QuadTree[T]) Live(h NodeHandle) bool {
	return h >= 0 && int(h) < len(q.nodes) && q.nodes[h].live
}

// Member returns the value stored at h.
func (q *QuadTree[T]) Member(h NodeHandle) T {
	q.checkHandle(h)
	return q.nodes[h].member
}

// Bucket returns the bucket currently holding h.
func (q *QuadTree[T]) Bucket(h NodeHandle) int {
	q.checkLive(h)
	return int(q.nodes[h].bucket)
}

// Members appends the handles in bucket b to dst, head first.
func (q *QuadTree[T]) Members(b int, dst []NodeHandle) []NodeHandle {
	q.checkBucket(b)
	return q.appendBucket(dst, b, NoNode)
}

// Candidates appends to dst every node that may overlap h: the rest of h's
// bucket, all ancestor buckets up to the root, then all descendant buckets of
// h's quadrant level by level.
func (q *QuadTree[T]) Candidates(h NodeHandle, dst []NodeHandle) []NodeHandle {
	q.checkLive(h)
	b := int(q.nodes[h].bucket)
	level := q.Level(b)
	quad := b - q.offsets[level]

	dst = q.appendBucket(dst, b, h)

	for l, qd := level-1, quad>>2; l >= 0; l, qd = l-1, qd>>2 {
		dst = q.appendBucket(dst, q.offsets[l]+qd, NoNode)
	}

	for l, span := level+1, 4; l < q.levels; l, span = l+1, span*4 {
		first := q.offsets[l] + quad*span
		for i := first; i < first+span; i++ {
			dst = q.appendBucket(dst, i, NoNode)
		}
	}
	return dst
}

// Pairs calls fn once for every broad-phase candidate pair in the tree:
// members sharing a bucket, and each member against every member of its
// ancestor buckets.
func (q *QuadTree[T]) Pairs(fn func(a, b NodeHandle)) {
	stack := make([]NodeHandle, 0, 64)
	q.pairs(0, 0, &stack, fn)
}

func (q *QuadTree[T]) pairs(level, quad int, stack *[]NodeHandle, fn func(a, b NodeHandle)) {
	b := q.offsets[level] + quad
	for h := q.heads[b]; h != NoNode; h = q.nodes[h].next {
		for o := q.nodes[h].next; o != NoNode; o = q.nodes[o].next {
			fn(h, o)
		}
		for _, a := range *stack {
			fn(a, h)
		}
	}

	if level+1 == q.levels {
		return
	}

	mark := len(*stack)
	for h := q.heads[b]; h != NoNode; h = q.nodes[h].next {
		*stack = append(*stack, h)
	}
	for c := 0; c < 4; c++ {
		q.pairs(level+1, quad*4+c, stack, fn)
	}
	*stack = (*stack)[:mark]
}

func (q *QuadTree[T]) appendBucket(dst []NodeHandle, b int, skip NodeHandle) []NodeHandle {
	for h := q.heads[b]; h != NoNode; h = q.nodes[h].next {
		if h != skip {
			dst = append(dst, h)
		}
	}
	return dst
}

func (q *QuadTree[T]) link(h NodeHandle, b int) {
	n := &q.nodes[h]
	n.bucket = int32(b)
	n.prev = NoNode
	n.next = q.heads[b]
	if n.next != NoNode {
		q.nodes[n.next].prev = h
	}
	q.heads[b] = h
	q.counts[b]++
}

func (q *QuadTree[T]) unlink(h NodeHandle) {
	n := &q.nodes[h]
	if n.prev != NoNode {
		q.nodes[n.prev].next = n.next
	} else {
		q.heads[n.bucket] = n.next
	}
	if n.next != NoNode {
		q.nodes[n.next].prev = n.prev
	}
	n.prev, n.next = NoNode, NoNode
	q.counts[n.bucket]--
}

// code returns the finest-level Morton code of the cell containing p.
func (q *QuadTree[T]) code(p Point) uint32 {
	return morton(q.gridCoord(p.X, q.cellW), q.gridCoord(p.Y, q.cellH))
}

func (q *QuadTree[T]) gridCoord(v, cell float64) uint32 {
	c := v / cell
	if !(c > 0) {
		return 0
	}
	if c >= float64(q.gridMax) {
		return q.gridMax
	}
	return uint32(c)
}

func (q *QuadTree[T]) checkBucket(b int) {
	if b < 0 || b >= len(q.heads) {
		panic(fmt.Sprintf("quadtree: bucket %d out of range [0, %d)", b, len(q.heads)))
	}
}

func (q *QuadTree[T]) checkHandle(h NodeHandle) {
	if h < 0 || int(h) >= len(q.nodes) {
		panic(fmt.Sprintf("quadtree: unknown handle %d", h))
	}
}

func (q *QuadTree[T]) checkLive(h NodeHandle) {
	q.checkHandle(h)
	if !q.nodes[h].live {
		panic(fmt.Sprintf("quadtree: handle %d was removed", h))
	}
}

// morton interleaves x into the even bits and y into the odd bits.
func morton(x, y uint32) uint32 {
	return spread(x) | spread(y)<<1
}

// spread inserts a zero bit above each of the low 16 bits of v.
func spread(v uint32) uint32 {
	v &= 0x0000ffff
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compact is the inverse of spread: it gathers the even bits of v.
func compact(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff
	v = (v | v>>8) & 0x0000ffff
	return v
}
