package ui

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/temoto/ghost/log2"
	xdraw "golang.org/x/image/draw"
)

const DefaultIconSize = 48

// IconSet holds square icons prescaled to one size.
// Icons are used as alpha masks and recolored when drawn.
type IconSet struct {
	size int
	m    map[string]image.Image
}

func NewIconSet(size int) *IconSet {
	if size <= 0 {
		size = DefaultIconSize
	}
	return &IconSet{size: size, m: make(map[string]image.Image)}
}

// LoadIcons reads <dir>/<name>.png for each name. Missing or broken files are skipped.
func LoadIcons(log *log2.Log, dir string, size int, names ...string) *IconSet {
	self := NewIconSet(size)
	if dir == "" {
		log.Debugf("ui icons dir=empty")
		return self
	}
	for _, name := range names {
		path := filepath.Join(dir, name+".png")
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			log.Debugf("ui icon name=%s path=%s not found", name, path)
			continue
		}
		if err != nil {
			log.Errorf("ui icon name=%s err=%v", name, err)
			continue
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			log.Errorf("ui icon name=%s path=%s decode err=%v", name, path, err)
			continue
		}
		self.Add(name, img)
	}
	return self
}

func (self *IconSet) Size() int { return self.size }

func (self *IconSet) Add(name string, src image.Image) {
	dst := image.NewRGBA(image.Rect(0, 0, self.size, self.size))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	self.m[name] = dst
}

func (self *IconSet) Get(name string) (image.Image, bool) {
	if self == nil {
		return nil, false
	}
	img, ok := self.m[name]
	return img, ok
}
