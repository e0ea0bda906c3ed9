package filters

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/soypat/pixfx"
)

//go:embed point-filter-gpu.wgsl
var baseShaderWGSL string

// PointFilterGPU applies a per-pixel GPU compute shader transformation over BGRA buffers.
// Embed this in concrete filter implementations and provide a transform function in WGSL.
type PointFilterGPU struct {
	mu     sync.Mutex
	gpu    gpuResources
	Params [4]uint32 // Uniform params: [0]=width, [1]=height, [2..3]=user params
	inited bool
}

type gpuResources struct {
	device        *wgpu.Device
	queue         *wgpu.Queue
	shaderModule  *wgpu.ShaderModule
	pipeline      *wgpu.ComputePipeline
	bindLayout    *wgpu.BindGroupLayout
	uniformBuffer *wgpu.Buffer
	inputBuffer   *wgpu.Buffer
	outputBuffer  *wgpu.Buffer
	width, height int
}

// Init initializes GPU resources with the given transform WGSL code.
// transformCode should define: fn transform(bgr: vec3<u32>, x: u32, y: u32) -> vec3<u32>
// and may read the uniforms u.width, u.height, u.param0 and u.param1.
func (f *PointFilterGPU) Init(device *wgpu.Device, queue *wgpu.Queue, transformCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fullShader := strings.Replace(baseShaderWGSL, "// TRANSFORM_PLACEHOLDER", transformCode, 1)

	f.gpu.device = device
	f.gpu.queue = queue

	var err error
	f.gpu.shaderModule, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fullShader},
	})
	if err != nil {
		return fmt.Errorf("shader module: %w", err)
	}

	f.gpu.pipeline, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     f.gpu.shaderModule,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return fmt.Errorf("compute pipeline: %w", err)
	}

	f.gpu.bindLayout = f.gpu.pipeline.GetBindGroupLayout(0)

	f.gpu.uniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  16, // 4 x uint32
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("uniform buffer: %w", err)
	}

	pixfx.Logger().Info("pixfx gpu pipeline ready")
	f.inited = true
	return nil
}

// Process runs the shader over src and returns a new buffer of the same dimensions.
// src is not modified. Alpha of every output pixel is 255.
func (f *PointFilterGPU) Process(src *pixfx.Buffer) (*pixfx.Buffer, error) {
	dst, err := pixfx.New(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	if err := f.ProcessTo(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// ProcessTo runs the shader over src and stores the result in dst.
// dst and src must have the same dimensions and may be the same buffer.
func (f *PointFilterGPU) ProcessTo(dst, src *pixfx.Buffer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.inited {
		return errGPUNotInitialized
	} else if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return fmt.Errorf("gpu: dst %dx%d, src %dx%d: %w", dst.Width(), dst.Height(), src.Width(), src.Height(), pixfx.ErrDimensionMismatch)
	} else if src.Empty() {
		return nil
	}

	w, h := src.Width(), src.Height()
	if err := f.ensureBuffers(w, h); err != nil {
		return err
	}

	f.gpu.queue.WriteBuffer(f.gpu.inputBuffer, 0, src.Bytes())

	f.Params[0], f.Params[1] = uint32(w), uint32(h)
	f.gpu.queue.WriteBuffer(f.gpu.uniformBuffer, 0, wgpu.ToBytes(f.Params[:]))

	if err := f.dispatch(w, h); err != nil {
		return err
	}
	return f.readback(dst.Bytes())
}

func (f *PointFilterGPU) ensureBuffers(w, h int) error {
	if w == f.gpu.width && h == f.gpu.height {
		return nil
	}

	f.releaseImageBuffers()

	size := uint64(w * h * pixfx.BytesPerPixel)
	pixfx.Logger().Debug("pixfx gpu buffers", "width", w, "height", h, "bytes", size)
	var err error

	f.gpu.inputBuffer, err = f.gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("input buffer: %w", err)
	}

	f.gpu.outputBuffer, err = f.gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("output buffer: %w", err)
	}

	f.gpu.width, f.gpu.height = w, h
	return nil
}

func (f *PointFilterGPU) dispatch(w, h int) error {
	bindGroup, err := f.gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: f.gpu.bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: f.gpu.uniformBuffer, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: f.gpu.inputBuffer, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: f.gpu.outputBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := f.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(f.gpu.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(uint32((w+7)/8), uint32((h+7)/8), 1)
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish: %w", err)
	}

	f.gpu.queue.Submit(cmd)
	return nil
}

// readback copies the output storage buffer into dst.
func (f *PointFilterGPU) readback(dst []byte) error {
	size := uint64(f.gpu.width * f.gpu.height * pixfx.BytesPerPixel)

	staging, err := f.gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("staging buffer: %w", err)
	}
	defer staging.Release()

	encoder, err := f.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("readback encoder: %w", err)
	}
	encoder.CopyBufferToBuffer(f.gpu.outputBuffer, 0, staging, 0, size)
	cmd, err := encoder.Finish(nil)
	encoder.Release()
	if err != nil {
		return fmt.Errorf("readback finish: %w", err)
	}

	f.gpu.queue.Submit(cmd)
	f.gpu.device.Poll(true, nil)

	done := make(chan error, 1)
	staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- fmt.Errorf("map failed: %v", status)
			return
		}
		done <- nil
	})

	f.gpu.device.Poll(true, nil)
	if err := <-done; err != nil {
		return err
	}

	copy(dst, staging.GetMappedRange(0, uint(size)))
	staging.Unmap()
	return nil
}

func (f *PointFilterGPU) releaseImageBuffers() {
	if f.gpu.inputBuffer != nil {
		f.gpu.inputBuffer.Release()
		f.gpu.inputBuffer = nil
	}
	if f.gpu.outputBuffer != nil {
		f.gpu.outputBuffer.Release()
		f.gpu.outputBuffer = nil
	}
	f.gpu.width, f.gpu.height = 0, 0
}

// Cleanup releases all GPU resources.
func (f *PointFilterGPU) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.releaseImageBuffers()
	if f.gpu.uniformBuffer != nil {
		f.gpu.uniformBuffer.Release()
	}
	if f.gpu.bindLayout != nil {
		f.gpu.bindLayout.Release()
	}
	if f.gpu.pipeline != nil {
		f.gpu.pipeline.Release()
	}
	if f.gpu.shaderModule != nil {
		f.gpu.shaderModule.Release()
	}
	f.inited = false
}

// SetParam sets a user parameter (index 0 or 1, mapped to Params[2] and Params[3]).
func (f *PointFilterGPU) SetParam(index int, value uint32) {
	if index >= 0 && index < 2 {
		f.mu.Lock()
		f.Params[2+index] = value
		f.mu.Unlock()
	}
}

// Controls returns nil - concrete implementations should override.
func (f *PointFilterGPU) Controls() []pixfx.Control { return nil }

var errGPUNotInitialized = errorString("gpu filter not initialized")
