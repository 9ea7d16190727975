package inference

import (
	"image"
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

// Backend executes the floor-plan model on one image, producing the room
// and boundary score tensors at the model's working resolution, shape
// (InputSize, InputSize, C) each.
type Backend interface {
	Predict(img image.Image) (room, boundary *tensor.Dense, err error)
	Close() error
}

// NewBackend opens a model session for the configured runtime.
//
// Arguments:
//   - cfg: Session configuration. ModelPath must exist.
//
// Returns:
//   - Backend: The ready session.
//   - error: When the model cannot be loaded.
func NewBackend(cfg Config) (Backend, error) {
	cfg = cfg.withDefaults()
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "model file %s", cfg.ModelPath)
	}
	switch cfg.Backend {
	case BackendORT:
		return newORTSession(cfg)
	case BackendDNN:
		return newDNNSession(cfg)
	default:
		return nil, errors.Errorf("unknown backend %q", cfg.Backend)
	}
}

// ortSession wraps an onnxruntime session with pre-allocated input and
// output tensors reused across images.
type ortSession struct {
	session  *ort.AdvancedSession
	input    *ort.Tensor[float32]
	room     *ort.Tensor[float32]
	boundary *ort.Tensor[float32]
}

func newORTSession(cfg Config) (*ortSession, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initializing onnxruntime environment")
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, InputSize, InputSize, 3))
	if err != nil {
		return nil, errors.Wrap(err, "allocating input tensor")
	}
	room, err := ort.NewEmptyTensor[float32](ort.NewShape(1, InputSize, InputSize, 9))
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "allocating room output tensor")
	}
	boundary, err := ort.NewEmptyTensor[float32](ort.NewShape(1, InputSize, InputSize, 3))
	if err != nil {
		input.Destroy()
		room.Destroy()
		return nil, errors.Wrap(err, "allocating boundary output tensor")
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.RoomOutputName, cfg.BoundaryOutputName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{room, boundary},
		nil,
	)
	if err != nil {
		input.Destroy()
		room.Destroy()
		boundary.Destroy()
		return nil, errors.Wrapf(err, "creating session for %s", cfg.ModelPath)
	}

	return &ortSession{
		session:  session,
		input:    input,
		room:     room,
		boundary: boundary,
	}, nil
}

// Predict runs one image through the model.
func (s *ortSession) Predict(img image.Image) (*tensor.Dense, *tensor.Dense, error) {
	if err := PrepareInput(img, s.input.GetData()); err != nil {
		return nil, nil, err
	}
	if err := s.session.Run(); err != nil {
		return nil, nil, errors.Wrap(err, "running inference")
	}
	return scoresFromBuffer(s.room.GetData(), 9), scoresFromBuffer(s.boundary.GetData(), 3), nil
}

// Close releases the session and its tensors.
func (s *ortSession) Close() error {
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.room != nil {
		s.room.Destroy()
		s.room = nil
	}
	if s.boundary != nil {
		s.boundary.Destroy()
		s.boundary = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
	return nil
}

// scoresFromBuffer copies a [1, H, W, C] output buffer into an (H, W, C)
// dense tensor owned by the caller. The session reuses its buffers across
// runs, so the copy is required.
func scoresFromBuffer(buf []float32, channels int) *tensor.Dense {
	data := make([]float32, len(buf))
	copy(data, buf)
	return tensor.New(
		tensor.WithShape(InputSize, InputSize, channels),
		tensor.WithBacking(data),
	)
}
