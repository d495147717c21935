// SPDX-License-Identifier: EPL-2.0

// Package scene plays a configured timeline of mixer events.
//
// A [Library] turns the sounds of a config into mixer sources: files are
// decoded up front into clips, or streamed from disk, and tones are
// generated. A [Director] fires the config's events against an
// audiosys.System as playback time passes.
package scene
