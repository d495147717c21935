// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3 is returned when the input has no decodable MP3 frame.
var ErrNotMP3 = errors.New("not an MP3 stream")
