package raster

// Material groups the texture maps used to shade a fragment. Any map may be
// nil; absent maps sample as white and disable the terms that depend on
// them.
type Material struct {
	Diffuse          *Surface
	Normal           *Surface
	Roughness        *Surface
	Metallic         *Surface
	AmbientOcclusion *Surface
	Emissive         *Surface
}

var emptyMaterial Material

// materialFor resolves the material index carried in uv.z. Indices are
// rounded; out-of-range values fall back to the first material.
func materialFor(materials []Material, index float32) *Material {
	if len(materials) == 0 {
		return &emptyMaterial
	}
	i := int(index + 0.5)
	if index < 0 || i >= len(materials) {
		return &materials[0]
	}
	return &materials[i]
}
