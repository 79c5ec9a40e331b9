package texture

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/logger"
)

// Handle identifies an uploaded texture. Zero means no texture.
type Handle uint32

// None is the failure sentinel returned by Loader.Load.
const None Handle = 0

// ErrUpload is returned when the uploader rejects an image.
var ErrUpload = errors.New("texture upload failed")

// Source reads raw file bytes by name.
type Source interface {
	Load(name string) ([]byte, error)
}

// Uploader moves decoded mip levels to the graphics backend.
type Uploader interface {
	UploadTexture(levels []*image.RGBA) (Handle, error)
	DeleteTexture(h Handle)
}

// Options controls the processing applied before upload.
type Options struct {
	Mipmaps  bool
	NTSCSafe bool
	FlipY    bool
}

// DefaultOptions returns mipmapped, NTSC-safe, bottom-up textures.
func DefaultOptions() Options {
	return Options{Mipmaps: true, NTSCSafe: true, FlipY: true}
}

// Loader decodes images from a Source and uploads them, remembering each
// handle so Release can free them all.
type Loader struct {
	src     Source
	up      Uploader
	opts    Options
	log     *zap.Logger
	handles map[string]Handle
}

// NewLoader creates a loader.
func NewLoader(src Source, up Uploader, opts Options) *Loader {
	return &Loader{
		src:     src,
		up:      up,
		opts:    opts,
		log:     logger.Named("texture"),
		handles: make(map[string]Handle),
	}
}

// Prepare reads and decodes name and returns the mip levels to upload.
func (l *Loader) Prepare(name string) ([]*image.RGBA, error) {
	data, err := l.src.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	if l.opts.FlipY {
		FlipY(img)
	}
	if l.opts.NTSCSafe {
		ClampNTSC(img)
	}
	if l.opts.Mipmaps {
		return MipChain(img), nil
	}
	return []*image.RGBA{img}, nil
}

// LoadErr loads name, returning the cached handle if it was loaded before.
func (l *Loader) LoadErr(name string) (Handle, error) {
	if h, ok := l.handles[name]; ok {
		return h, nil
	}

	levels, err := l.Prepare(name)
	if err != nil {
		return None, err
	}
	h, err := l.up.UploadTexture(levels)
	if err != nil {
		return None, fmt.Errorf("%w %s: %w", ErrUpload, name, err)
	}
	if h == None {
		return None, fmt.Errorf("%w %s: backend returned no handle", ErrUpload, name)
	}

	l.handles[name] = h
	l.log.Debug("texture loaded",
		zap.String("name", name),
		zap.Int("width", levels[0].Rect.Dx()),
		zap.Int("height", levels[0].Rect.Dy()),
		zap.Int("levels", len(levels)),
		zap.Uint32("handle", uint32(h)))
	return h, nil
}

// Load is LoadErr that logs the failure and returns None instead.
func (l *Loader) Load(name string) Handle {
	h, err := l.LoadErr(name)
	if err != nil {
		l.log.Warn("texture unavailable", zap.String("name", name), zap.Error(err))
		return None
	}
	return h
}

// Count returns the number of live textures.
func (l *Loader) Count() int {
	return len(l.handles)
}

// Release deletes every texture this loader uploaded.
func (l *Loader) Release() {
	for name, h := range l.handles {
		l.up.DeleteTexture(h)
		delete(l.handles, name)
	}
}
