package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	s := NewScene(testSize, 0)
	r := NewRecorder(s)
	root, _ := r.CreateContainer(r.Screen())
	btn, _ := r.CreateButton(root)
	r.Animate(Anim{Obj: btn, Prop: PropX, From: 240, To: 0, Duration: 75 * time.Millisecond})
	r.Destroy(btn)
	assert.Equal(t, []string{
		"create container 2",
		"create button 3",
		"animate 3 x from=240 to=0 duration=75ms",
		"destroy 3",
	}, r.Ops())
	r.Reset()
	assert.Empty(t, r.Ops())
	assert.True(t, s.Exists(root))
}
