package inference

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"
)

// dnnSession executes the model through the OpenCV DNN module. Useful on
// hosts where onnxruntime shared libraries are unavailable but OpenCV is.
type dnnSession struct {
	net         gocv.Net
	outputNames []string
}

func newDNNSession(cfg Config) (*dnnSession, error) {
	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, errors.Errorf("failed to load model %s", cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendOpenCV)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &dnnSession{
		net:         net,
		outputNames: []string{cfg.RoomOutputName, cfg.BoundaryOutputName},
	}, nil
}

// Predict runs one image through the model.
func (s *dnnSession) Predict(img image.Image) (*tensor.Dense, *tensor.Dense, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, nil, errors.Wrap(err, "converting image to mat")
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0/255.0,
		image.Pt(InputSize, InputSize), gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	s.net.SetInput(blob, "")
	outputs := s.net.ForwardLayers(s.outputNames)
	if len(outputs) != 2 {
		return nil, nil, errors.Errorf("model returned %d outputs, want 2", len(outputs))
	}
	defer func() {
		for i := range outputs {
			outputs[i].Close()
		}
	}()

	room, err := scoresFromMat(outputs[0], 9)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", s.outputNames[0])
	}
	boundary, err := scoresFromMat(outputs[1], 3)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", s.outputNames[1])
	}
	return room, boundary, nil
}

// Close releases the network.
func (s *dnnSession) Close() error {
	return s.net.Close()
}

// scoresFromMat copies a forward-pass output blob into an (H, W, C) dense
// tensor.
func scoresFromMat(mat gocv.Mat, channels int) (*tensor.Dense, error) {
	buf, err := mat.DataPtrFloat32()
	if err != nil {
		return nil, err
	}
	need := InputSize * InputSize * channels
	if len(buf) < need {
		return nil, errors.Errorf("output holds %d floats, want %d", len(buf), need)
	}
	return scoresFromBuffer(buf[:need], channels), nil
}
