// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"fmt"
	"testing"

	"github.com/ik5/audiosys/internal/audiotest"
)

func TestUpdateFading_FadeInMonotonic(t *testing.T) {
	t.Parallel()

	v := testVoice(4, audiotest.NewRampFrames(-1), 1)
	if v.state != FadingIn || v.fadeProgress != 0 {
		t.Fatalf("start: state %v progress %v, want fading-in at 0", v.state, v.fadeProgress)
	}

	prev := v.fadeProgress
	for _, frames := range []int{0, 13230, 13230, 13230} {
		v.updateFading(frames)
		if v.fadeProgress < prev {
			t.Fatalf("progress went down: %v -> %v", prev, v.fadeProgress)
		}
		if v.state != FadingIn {
			t.Fatalf("state = %v at progress %v, want fading-in", v.state, v.fadeProgress)
		}
		prev = v.fadeProgress
	}

	v.updateFading(13230)
	if v.fadeProgress != 1 {
		t.Errorf("progress = %v, want exactly 1", v.fadeProgress)
	}
	if v.state != Playing {
		t.Errorf("state = %v, want playing", v.state)
	}
	if v.fadeDelta != 0 || v.fadeVolume != 1 {
		t.Errorf("ramp after fade = (%v, %v), want (1, 0)", v.fadeVolume, v.fadeDelta)
	}
}

func TestUpdateFading_FadeOutReleases(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampFrames(-1)
	v := testVoice(4, src, 0)
	v.stop(0.5)

	if v.state != FadingOut {
		t.Fatalf("state = %v, want fading-out", v.state)
	}

	prev := v.fadeProgress
	for range 2 {
		v.updateFading(8820)
		if v.fadeProgress > prev {
			t.Fatalf("progress went up: %v -> %v", prev, v.fadeProgress)
		}
		prev = v.fadeProgress
	}
	if src.Closed != 0 {
		t.Fatal("source released mid-fade")
	}

	v.updateFading(8820)
	if v.fadeProgress != 0 {
		t.Errorf("progress = %v, want exactly 0", v.fadeProgress)
	}
	if v.state != Stopped {
		t.Errorf("state = %v, want stopped", v.state)
	}
	if src.Closed != 1 {
		t.Errorf("Closed = %d, want 1", src.Closed)
	}
}

// TestUpdateFading_LandsOnLength splits one second into advances that are
// not whole fractions of a second in float32 and checks the fade ends on
// the last frame, not one update later.
func TestUpdateFading_LandsOnLength(t *testing.T) {
	t.Parallel()

	for _, chunk := range []int{441, 735, 800, 1024, 1470, 11025} {
		t.Run(fmt.Sprintf("fade in by %d", chunk), func(t *testing.T) {
			t.Parallel()

			v := testVoice(4, audiotest.NewRampFrames(-1), 1)
			for elapsed := 0; elapsed < SampleRate; elapsed += chunk {
				if v.state != FadingIn {
					t.Fatalf("state = %v after %d frames, want fading-in", v.state, elapsed)
				}
				v.updateFading(min(chunk, SampleRate-elapsed))
			}
			if v.state != Playing || v.fadeProgress != 1 {
				t.Errorf("after 1s: state %v progress %v, want playing at 1", v.state, v.fadeProgress)
			}
		})

		t.Run(fmt.Sprintf("fade out by %d", chunk), func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewRampFrames(-1)
			v := testVoice(4, src, 0)
			v.stop(1)
			for elapsed := 0; elapsed < SampleRate; elapsed += chunk {
				if v.state != FadingOut {
					t.Fatalf("state = %v after %d frames, want fading-out", v.state, elapsed)
				}
				v.updateFading(min(chunk, SampleRate-elapsed))
			}
			if v.state != Stopped || v.fadeProgress != 0 || src.Closed != 1 {
				t.Errorf("after 1s: state %v progress %v closed %d, want stopped at 0 and released",
					v.state, v.fadeProgress, src.Closed)
			}
		})
	}
}

func TestUpdateFading_FadeOutFromPartialFadeIn(t *testing.T) {
	t.Parallel()

	v := testVoice(4, audiotest.NewRampFrames(-1), 1)
	v.updateFading(SampleRate / 4)
	v.stop(1)

	if v.fadeProgress != 0.25 {
		t.Fatalf("progress = %v at fade-out start, want 0.25", v.fadeProgress)
	}
	v.updateFading(SampleRate / 8)
	if v.fadeProgress != 0.125 {
		t.Errorf("progress = %v, want 0.125", v.fadeProgress)
	}
	v.updateFading(SampleRate / 8)
	if v.state != Stopped {
		t.Errorf("state = %v, want stopped after the remaining quarter second", v.state)
	}
}

func TestUpdateFading_Delta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state State
		time  float32
		want  float32
	}{
		{name: "fade in 1s", state: FadingIn, time: 1, want: 1.0 / SampleRate},
		{name: "fade in 2s", state: FadingIn, time: 2, want: 0.5 / SampleRate},
		{name: "fade out 0.5s", state: FadingOut, time: 0.5, want: -2.0 / SampleRate},
		{name: "playing", state: Playing, time: 1, want: 0},
		{name: "queued", state: Queued, time: 1, want: 0},
		{name: "crossfading", state: Crossfading, time: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := testVoice(4, audiotest.NewRampFrames(-1), 0)
			v.state = tt.state
			v.fadeInTime, v.fadeOutTime = tt.time, tt.time
			v.fadeProgress = 0.5
			v.fadeLen, v.fadePos = 100, 50

			v.updateFading(0)

			if v.fadeDelta != tt.want {
				t.Errorf("fadeDelta = %v, want %v", v.fadeDelta, tt.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	for state, want := range map[State]string{
		Stopped:     "stopped",
		Playing:     "playing",
		FadingIn:    "fading-in",
		FadingOut:   "fading-out",
		Crossfading: "crossfading",
		Queued:      "queued",
		State(42):   "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
