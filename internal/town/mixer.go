package town

import (
	"github.com/Faultbox/townview/internal/engine/anim"
	"github.com/Faultbox/townview/internal/engine/loader"
)

// newMixer plays every clip of a loaded model in a loop.
func newMixer(res *loader.Result) *anim.Mixer {
	m := anim.NewMixer(res.Scene)
	m.PlayAll(res.Animations)
	return m
}
