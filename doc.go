// SPDX-License-Identifier: EPL-2.0

// Package audiosys is a real-time software audio mixer for games.
//
// A [System] blends a music [Track], an ambience [Track] and a pool of
// prioritized sound effects into a fixed window of interleaved 16-bit stereo
// frames at [SampleRate]. Every voice keeps one window of samples cached
// ahead of the playhead, so the output can always be handed to the audio
// device without waiting on a decoder.
//
// # Producer and consumer
//
// Game code calls [System.Update] once per frame on its own goroutine,
// together with every play, stop and setter method. The audio callback
// calls [System.Consume] from another goroutine: it copies the newest
// window out and reports how many frames it will have played by the next
// Update. Update advances every voice by exactly that many frames.
//
//	sys, err := audiosys.New(16, 4096, audiosys.Music|audiosys.MusicCrossFade|audiosys.SoftClip)
//	if err != nil {
//		return err
//	}
//	defer sys.Close()
//
//	sys.Music().Play(music, 2.0)
//	h := sys.PlaySound(explosion, 1, 0)
//	sys.SetSoundPan(h, -0.5)
//
//	for running {
//		sys.Update()
//		// ...
//	}
//
// Device players that pull an io.Reader can use [NewReader] as the
// consumer. [Render] drives a System offline.
//
// # Sources
//
// Voices read from a [Source]: interleaved stereo float32 frames at
// SampleRate. [Restarter] enables looping, [Seeker] enables positioning,
// and io.Closer is called once the mixer is done with the source. The
// sources subpackage provides decoded clips and file streams built on the
// format decoders in formats.
//
// # Sound effects
//
// [System.PlaySound] returns a [SoundHandle]. Handles survive pool
// compaction and simply stop resolving once the sound has finished; every
// Sound method is a no-op on a stale handle. Only the highest-priority
// sounds that fit in the voice budget are heard, the rest keep advancing in
// silence.
package audiosys
