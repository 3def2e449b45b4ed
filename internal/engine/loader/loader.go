// Package loader loads GLB models off the frame thread and hands the
// results back through a completion queue.
package loader

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/engine/anim"
	"github.com/Faultbox/townview/internal/engine/scene"
)

// Reader provides raw asset bytes.
type Reader interface {
	Read(path string) ([]byte, error)
}

// Result is a decoded model.
type Result struct {
	Scene      *scene.Node
	Animations []*anim.Clip
	Images     []string // identifiers of the images the model references
}

// Loader reads and decodes models on goroutines. Callbacks run only
// inside Queue.Dispatch.
type Loader struct {
	src     Reader
	queue   *Queue
	manager *Manager
	log     *zap.Logger
	wg      sync.WaitGroup
}

// New creates a loader. manager may be nil when no batch tracking is needed.
func New(src Reader, queue *Queue, manager *Manager, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, queue: queue, manager: manager, log: log}
}

// Queue returns the completion queue callbacks are posted to.
func (l *Loader) Queue() *Queue {
	return l.queue
}

// Load starts loading path. Exactly one of onSuccess or onError runs, on the
// frame thread, during a later Dispatch. Must be called from the frame thread.
func (l *Loader) Load(path string, onSuccess func(*Result), onError func(error)) {
	l.itemStart(path)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		res, err := l.read(path)
		if err != nil {
			l.log.Debug("load failed", zap.String("path", path), zap.Error(err))
			l.queue.Post(func() {
				l.itemError(path)
				if onError != nil {
					onError(err)
				}
				l.itemEnd(path)
			})
			return
		}

		l.log.Debug("model decoded",
			zap.String("path", path),
			zap.Int("clips", len(res.Animations)),
			zap.Int("images", len(res.Images)))

		l.queue.Post(func() {
			for _, img := range res.Images {
				l.itemStart(img)
			}
			if onSuccess != nil {
				onSuccess(res)
			}
			l.itemEnd(path)

			// Images settle one frame after their model.
			if len(res.Images) > 0 {
				l.queue.Post(func() {
					for _, img := range res.Images {
						l.itemEnd(img)
					}
				})
			}
		})
	}()
}

// Wait blocks until every started load has posted its completion.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) read(path string) (*Result, error) {
	data, err := l.src.Read(path)
	if err != nil {
		return nil, err
	}
	res, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return res, nil
}

func (l *Loader) itemStart(url string) {
	if l.manager != nil {
		l.manager.ItemStart(url)
	}
}

func (l *Loader) itemEnd(url string) {
	if l.manager != nil {
		l.manager.ItemEnd(url)
	}
}

func (l *Loader) itemError(url string) {
	if l.manager != nil {
		l.manager.ItemError(url)
	}
}
