// Package inference - Model sessions producing the two per-pixel score
// tensors (room types and boundaries) consumed by the raster pipeline.
package inference

// InputSize is the fixed square working resolution of the model.
const InputSize = 512

// BackendKind selects the runtime used to execute the model.
type BackendKind string

const (
	// BackendORT runs the model through onnxruntime.
	BackendORT BackendKind = "ort"
	// BackendDNN runs the model through the OpenCV DNN module.
	BackendDNN BackendKind = "dnn"
)

// Config describes a model session.
type Config struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string
	// Backend selects the runtime. Defaults to BackendORT.
	Backend BackendKind
	// InputName is the model's image input. Defaults to "input".
	InputName string
	// RoomOutputName is the room-type logits output. Defaults to "logits_r".
	RoomOutputName string
	// BoundaryOutputName is the boundary logits output. Defaults to "logits_cw".
	BoundaryOutputName string
}

// withDefaults fills unset fields with the model's conventional names.
func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendORT
	}
	if c.InputName == "" {
		c.InputName = "input"
	}
	if c.RoomOutputName == "" {
		c.RoomOutputName = "logits_r"
	}
	if c.BoundaryOutputName == "" {
		c.BoundaryOutputName = "logits_cw"
	}
	return c
}
