// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"log/slog"
	"slices"
	"sort"
)

// pool stores the sound-effect voices densely in voices[:count].
// byPriority lists their handles by descending priority; only its head is
// ever mixed.
type pool struct {
	voices     []voice
	count      int
	byPriority []SoundHandle
	handles    handleTable

	window int
	log    *slog.Logger
}

func newPool(capacity, window int, log *slog.Logger) pool {
	p := pool{
		voices:     make([]voice, capacity),
		byPriority: make([]SoundHandle, 0, capacity),
		window:     window,
		log:        log,
	}
	for i := range p.voices {
		p.voices[i] = newVoice(window, log)
	}
	return p
}

// grow doubles the backing storage. Live voices keep their caches; only the
// new tail is allocated.
func (p *pool) grow() {
	capacity := max(2*len(p.voices), 1)

	voices := make([]voice, capacity)
	copy(voices, p.voices)
	for i := len(p.voices); i < capacity; i++ {
		voices[i] = newVoice(p.window, p.log)
	}
	p.voices = voices

	byPriority := make([]SoundHandle, len(p.byPriority), capacity)
	copy(byPriority, p.byPriority)
	p.byPriority = byPriority

	p.log.Debug("sound pool grown", "capacity", capacity)
}

// add claims a voice for src and files it by priority. Equal priorities
// land in no particular order relative to each other.
func (p *pool) add(src Source, priority, fadeIn float32) (*voice, bool) {
	grew := false
	if p.count == len(p.voices) {
		p.grow()
		grew = true
	}

	index := p.count
	p.count++

	v := &p.voices[index]
	v.volume, v.pan, v.loop = 1, 0, false
	v.priority = priority
	v.start(src, fadeIn)
	v.handle = p.handles.alloc(index)

	pos := sort.Search(len(p.byPriority), func(i int) bool {
		return p.priorityOf(p.byPriority[i]) <= priority
	})
	p.byPriority = slices.Insert(p.byPriority, pos, v.handle)

	return v, grew
}

// remove releases the voice at index and moves the last live voice into its
// slot so storage stays dense.
func (p *pool) remove(index int) {
	v := &p.voices[index]
	h := v.handle

	p.handles.release(h.id())
	v.release()
	v.handle = 0

	if i := slices.Index(p.byPriority, h); i >= 0 {
		p.byPriority = slices.Delete(p.byPriority, i, i+1)
	}

	last := p.count - 1
	if index != last {
		p.voices[index], p.voices[last] = p.voices[last], p.voices[index]
		p.handles.update(p.voices[index].handle.id(), index)
	}
	p.count--
}

// lookup resolves h to its live voice, or nil.
func (p *pool) lookup(h SoundHandle) *voice {
	index := p.handles.indexOf(h)
	if index < 0 || index >= p.count {
		return nil
	}
	return &p.voices[index]
}

func (p *pool) priorityOf(h SoundHandle) float32 {
	return p.voices[p.handles.indexOf(h)].priority
}

func (p *pool) live() []voice {
	return p.voices[:p.count]
}
