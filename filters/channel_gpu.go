package filters

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/soypat/pixfx"
)

// channelTransform implements every [Kind] selected by u.param0.
// All arithmetic is integer so results match the CPU transforms bit for bit.
const channelTransform = `
fn max_channel(c: vec3<u32>) -> u32 {
    let m = max(max(c.z, c.x), c.y);
    if (m == c.x) { return 0u; }
    if (m == c.y) { return 1u; }
    return 2u;
}

fn min_channel(c: vec3<u32>) -> u32 {
    let m = min(min(c.z, c.x), c.y);
    if (m == c.x) { return 0u; }
    if (m == c.y) { return 1u; }
    return 2u;
}

fn middle_channel(c: vec3<u32>) -> u32 {
    let hi = max(max(c.z, c.x), c.y);
    let lo = min(min(c.z, c.x), c.y);
    if (c.x != hi && c.x != lo) { return 0u; }
    if (c.y != hi && c.y != lo) { return 1u; }
    return 2u;
}

fn with_channel(c: vec3<u32>, i: u32, v: u32) -> vec3<u32> {
    var o = c;
    o[i] = v;
    return o;
}

// Round half away from zero of n/d*255.
fn scale255(n: u32, d: u32) -> u32 {
    return (2u * n * 255u + d) / (2u * d);
}

fn transform(c: vec3<u32>, x: u32, y: u32) -> vec3<u32> {
    switch u.param0 {
        case 0u: { return vec3<u32>(max(max(c.z, c.x), c.y)); }
        case 1u: { return vec3<u32>((2u * (c.x + c.y + c.z) + 3u) / 6u); }
        case 2u: { return vec3<u32>(min(min(c.z, c.x), c.y)); }
        case 3u: { return with_channel(vec3<u32>(0u), max_channel(c), 255u); }
        case 4u: { return with_channel(vec3<u32>(0u), min_channel(c), 255u); }
        case 5u: { return with_channel(c, max_channel(c), 255u); }
        case 6u: { return with_channel(c, max_channel(c), 0u); }
        case 7u: { return with_channel(c, min_channel(c), 255u); }
        case 8u: { return with_channel(c, min_channel(c), 0u); }
        case 9u: { return with_channel(c, middle_channel(c), 255u); }
        case 10u: { return with_channel(c, middle_channel(c), 0u); }
        case 11u: { return vec3<u32>(scale255(x, u.width), c.y, scale255(y, u.height)); }
        case 12u: {
            let d = i32(scale255(x, u.width)) - 127;
            return vec3<u32>(clamp(vec3<i32>(c) + vec3<i32>(d), vec3<i32>(0), vec3<i32>(255)));
        }
        case 13u: { return vec3<u32>(0u, 0u, c.z); }
        case 14u: { return vec3<u32>(0u, c.y, 0u); }
        case 15u: { return vec3<u32>(c.x, 0u, 0u); }
        default: { return c; }
    }
}
`

// ChannelFilterGPU runs the built-in channel transforms with a GPU compute shader.
type ChannelFilterGPU struct {
	PointFilterGPU
	kind  Kind
	ctrls []pixfx.Control
}

// NewChannelGPU creates a GPU-accelerated filter for the given built-in transform.
func NewChannelGPU(device *wgpu.Device, queue *wgpu.Queue, kind Kind) (*ChannelFilterGPU, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%v: %w", kind, pixfx.ErrUnknownTransform)
	}
	f := &ChannelFilterGPU{}
	if err := f.Init(device, queue, channelTransform); err != nil {
		return nil, err
	}
	f.SetKind(kind)
	f.ctrls = []pixfx.Control{
		&pixfx.ControlEnum[Kind]{
			Name:        "Transform",
			Description: "Per-pixel channel transform to apply",
			Value:       kind,
			ValidValues: Kinds(),
			OnChange: func(k Kind) error {
				f.SetKind(k)
				return nil
			},
		},
	}
	return f, nil
}

// SetKind selects the transform run by subsequent Process calls.
func (f *ChannelFilterGPU) SetKind(kind Kind) {
	f.kind = kind
	f.SetParam(0, uint32(kind))
}

// Kind returns the currently selected transform.
func (f *ChannelFilterGPU) Kind() Kind {
	return f.kind
}

// Controls returns the filter's adjustable parameters.
func (f *ChannelFilterGPU) Controls() []pixfx.Control {
	return f.ctrls
}
