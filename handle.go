// SPDX-License-Identifier: EPL-2.0

package audiosys

// SoundHandle identifies a sound-effect voice. It stays valid while the
// voice lives, no matter how the pool rearranges its storage, and never
// resolves again once the voice is gone. The zero value is never issued.
type SoundHandle uint64

// handleSlot maps one handle id to a pool index. counter is bumped on every
// release so stale copies of the packed handle stop resolving.
type handleSlot struct {
	index   int
	counter uint32
}

// handleTable is a generation-counted allocator with a FIFO free list.
type handleTable struct {
	slots []handleSlot
	free  []int
	head  int
}

func packHandle(counter uint32, id int) SoundHandle {
	return SoundHandle(uint64(counter)<<32 | uint64(id+1))
}

func (h SoundHandle) id() int { return int(uint32(h)) - 1 }

func (h SoundHandle) counter() uint32 { return uint32(h >> 32) }

// alloc binds a fresh or recycled id to index and returns its handle.
func (t *handleTable) alloc(index int) SoundHandle {
	var id int
	if t.head < len(t.free) {
		id = t.free[t.head]
		t.head++
		if t.head == len(t.free) {
			t.free, t.head = t.free[:0], 0
		}
	} else {
		id = len(t.slots)
		t.slots = append(t.slots, handleSlot{})
	}

	t.slots[id].index = index
	return packHandle(t.slots[id].counter, id)
}

// release invalidates every outstanding copy of the id's handle and queues
// the id for reuse.
func (t *handleTable) release(id int) {
	t.slots[id].counter++
	t.slots[id].index = -1

	if t.head > 0 && t.head >= len(t.free)/2 {
		n := copy(t.free, t.free[t.head:])
		t.free, t.head = t.free[:n], 0
	}
	t.free = append(t.free, id)
}

// indexOf returns the pool index h refers to, or -1.
func (t *handleTable) indexOf(h SoundHandle) int {
	id := h.id()
	if id < 0 || id >= len(t.slots) {
		return -1
	}

	slot := t.slots[id]
	if slot.counter != h.counter() {
		return -1
	}
	return slot.index
}

// update records that the voice behind id moved to index.
func (t *handleTable) update(id, index int) {
	t.slots[id].index = index
}
