// Package framebuffer writes RGBA pixels into Linux fbdev.
package framebuffer

import (
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"unsafe"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

type Framebuffer struct {
	buf   []byte
	dev   *os.File
	finfo fixedScreenInfo
	vinfo variableScreenInfo
}

func New(dev string) (*Framebuffer, error) {
	devFile, err := os.OpenFile(dev, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, errors.Annotate(err, "open")
	}
	fb := &Framebuffer{dev: devFile}
	fd := fb.dev.Fd()

	if err = ioctl(fd, getFixedScreenInfo, uintptr(unsafe.Pointer(&fb.finfo))); err != nil {
		fb.dev.Close()
		return nil, errors.Annotate(err, "getFixedScreenInfo")
	}
	if err = ioctl(fd, getVariableScreenInfo, uintptr(unsafe.Pointer(&fb.vinfo))); err != nil {
		fb.dev.Close()
		return nil, errors.Annotate(err, "getVariableScreenInfo")
	}
	if _, err = pixelFormat(&fb.vinfo); err != nil {
		fb.dev.Close()
		return nil, err
	}

	stride := fb.finfo.LineLength
	if stride == 0 {
		stride = fb.vinfo.Xres * (fb.vinfo.BitsPerPixel / 8)
	}
	fb.finfo.LineLength = stride
	fb.buf = make([]byte, stride*fb.vinfo.Yres)
	return fb, nil
}

func (fb *Framebuffer) Close() error {
	return fb.dev.Close()
}

func (fb *Framebuffer) Flush() error {
	_, err := fb.dev.WriteAt(fb.buf, 0)
	return err
}

func (fb *Framebuffer) Size() image.Point {
	return image.Point{X: int(fb.vinfo.Xres), Y: int(fb.vinfo.Yres)}
}

// Update sets all pixels in internal buffer, call Flush() to write to hardware.
func (fb *Framebuffer) Update(cs []color.RGBA) error {
	format, err := pixelFormat(&fb.vinfo)
	if err != nil {
		return err
	}
	encodeInto(fb.buf, cs, format, fb.Size(), int(fb.finfo.LineLength))
	return nil
}

type format uint8

const (
	formatRGB565 format = iota + 1
	formatXRGB8888
)

var rgb565 = variableScreenInfo{
	BitsPerPixel: 16,
	Red:          bitField{Offset: 11, Length: 5},
	Green:        bitField{Offset: 5, Length: 6},
	Blue:         bitField{Offset: 0, Length: 5},
}

var xrgb8888 = variableScreenInfo{
	BitsPerPixel: 32,
	Red:          bitField{Offset: 16, Length: 8},
	Green:        bitField{Offset: 8, Length: 8},
	Blue:         bitField{Offset: 0, Length: 8},
}

func pixelFormat(v *variableScreenInfo) (format, error) {
	same := func(f *variableScreenInfo) bool {
		return v.BitsPerPixel == f.BitsPerPixel && v.Red == f.Red && v.Green == f.Green && v.Blue == f.Blue
	}
	switch {
	case same(&rgb565):
		return formatRGB565, nil
	case same(&xrgb8888):
		return formatXRGB8888, nil
	}
	return 0, errors.NotSupportedf("framebuffer color model bpp=%d red=%v green=%v blue=%v",
		v.BitsPerPixel, v.Red, v.Green, v.Blue)
}

func encodeInto(buf []byte, cs []color.RGBA, f format, size image.Point, stride int) {
	for y := 0; y < size.Y; y++ {
		row := buf[y*stride:]
		line := cs[y*size.X : (y+1)*size.X]
		switch f {
		case formatRGB565:
			for x, c := range line {
				binary.LittleEndian.PutUint16(row[x*2:], encode565(c))
			}
		case formatXRGB8888:
			for x, c := range line {
				binary.LittleEndian.PutUint32(row[x*4:], uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
			}
		}
	}
}

func encode565(c color.RGBA) uint16 {
	return (uint16(c.R) & 0xf8 << 8) | (uint16(c.G) & 0xfc << 3) | (uint16(c.B) & 0xf8 >> 3)
}

func ioctl(fd uintptr, cmd uintptr, data uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, data); errno != 0 {
		return os.NewSyscallError("ioctl", errno)
	}
	return nil
}
