//go:build !cgo

package vad

import "errors"

// NewWebRTC reports the WebRTC backend as unavailable without cgo. Use the
// energy engine instead.
func NewWebRTC(aggressiveness int) (Classifier, error) {
	return nil, errors.New("webrtcvad unavailable (cgo disabled)")
}
