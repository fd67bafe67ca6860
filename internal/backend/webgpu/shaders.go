//go:build windows

package webgpu

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// crossShader computes the 3-element cross product for every independent
// slice along the operation dimension. Inputs are contiguous row-major, so
// slice i maps to base = (i / sdim) * sdim * 3 + (i % sdim), with the three
// components at base, base+sdim, base+2*sdim.
const crossShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    nslices: u32,
    sdim: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= params.nslices) {
        return;
    }
    let s = params.sdim;
    let base = (i / s) * s * 3u + (i % s);

    let a0 = a[base];
    let a1 = a[base + s];
    let a2 = a[base + 2u * s];
    let b0 = b[base];
    let b1 = b[base + s];
    let b2 = b[base + 2u * s];

    result[base] = a1 * b2 - a2 * b1;
    result[base + s] = a2 * b0 - a0 * b2;
    result[base + 2u * s] = a0 * b1 - a1 * b0;
}
`
