package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/filters"
)

// step is a resolved transform of a chain.
type step struct {
	name string
	fn   pixfx.Transform
}

// pipeline applies chains of catalog transforms on the CPU engine or,
// when gpu is set, with the compute shader backend.
// A pipeline with a GPU backend must not be shared between goroutines.
type pipeline struct {
	catalog *pixfx.Catalog
	engine  pixfx.Engine
	gpu     *filters.ChannelFilterGPU
	release func()
	logger  *log.Logger
}

func newPipeline(catalog *pixfx.Catalog, workers int, useGPU bool, logger *log.Logger) (*pipeline, error) {
	p := &pipeline{
		catalog: catalog,
		engine:  pixfx.Engine{Workers: workers},
		logger:  logger,
		release: func() {},
	}
	if !useGPU {
		return p, nil
	}
	device, queue, release, err := openGPU()
	if err != nil {
		return nil, err
	}
	p.gpu, err = filters.NewChannelGPU(device, queue, filters.MaxValueGrayscale)
	if err != nil {
		release()
		return nil, fmt.Errorf("gpu filter: %w", err)
	}
	p.release = func() {
		p.gpu.Cleanup()
		release()
	}
	logger.Debug("using gpu backend")
	return p, nil
}

// Close releases GPU resources, if any.
func (p *pipeline) Close() {
	p.release()
}

// resolve maps every query to a catalog entry before anything is applied.
func (p *pipeline) resolve(queries []string) ([]step, error) {
	if len(queries) == 0 {
		return nil, errNoSteps
	}
	steps := make([]step, len(queries))
	for i, q := range queries {
		name, fn, err := resolveTransform(p.catalog, q)
		if err != nil {
			return nil, err
		}
		steps[i] = step{name: name, fn: fn}
	}
	return steps, nil
}

// run applies the named transforms to buf in order.
// No transform is applied unless every name resolves.
func (p *pipeline) run(buf *pixfx.Buffer, queries []string) error {
	steps, err := p.resolve(queries)
	if err != nil {
		return err
	}
	for _, s := range steps {
		if err := p.apply(buf, s); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (p *pipeline) apply(buf *pixfx.Buffer, s step) error {
	prog := newProgress(p.logger)
	if p.gpu != nil {
		kind, err := filters.ParseKind(s.name)
		if err != nil {
			return err
		}
		p.gpu.SetKind(kind)
		if err := p.gpu.ProcessTo(buf, buf); err != nil {
			return err
		}
	} else if err := p.engine.Apply(buf, s.fn); err != nil {
		return err
	}
	prog.done("Applied "+s.name, "width", buf.Width(), "height", buf.Height())
	return nil
}

// openGPU acquires a WebGPU device. The returned func releases it.
func openGPU() (*wgpu.Device, *wgpu.Queue, func(), error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, nil, nil, errNoGPU
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, nil, nil, fmt.Errorf("gpu adapter: %w", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, nil, nil, fmt.Errorf("gpu device: %w", err)
	}
	queue := device.GetQueue()
	release := func() {
		queue.Release()
		device.Release()
		adapter.Release()
		instance.Release()
	}
	return device, queue, release, nil
}

var (
	errNoSteps = errors.New("no transforms given")
	errNoGPU   = errors.New("webgpu not available")
)
