// Package detector runs the primary object detection model. It owns the
// TensorFlow Lite interpreter for the detector and converts its raw SSD
// style output into domain detections.
package detector

import (
	"fmt"
	"os"
	"sync"
	"time"

	tflite "github.com/tphakala/go-tflite"
	"github.com/tphakala/go-tflite/delegates/xnnpack"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/imaging"
	"github.com/faunadex/faunadex-go/internal/logging"
)

var logger = logging.ForService("detector")

// Detector wraps the primary detection model. A single instance is shared
// by all sessions; Detect serializes access to the interpreter.
type Detector struct {
	Settings *conf.Settings

	interpreter *tflite.Interpreter
	labels      []string
	inputSize   int
	ready       bool

	// mu guards interpreter access, tflite interpreters are not thread safe
	mu sync.Mutex
}

// New creates and initializes a Detector from settings. The model is loaded
// once here; the returned instance is meant to be shared.
func New(settings *conf.Settings) (*Detector, error) {
	d := &Detector{
		Settings:  settings,
		inputSize: settings.Detector.InputSize,
	}

	if err := d.initializeModel(); err != nil {
		return nil, err
	}

	if err := d.loadLabels(); err != nil {
		return nil, err
	}

	d.ready = true
	logger.Info("detector model initialized",
		"model", settings.Detector.ModelPath,
		"labels", len(d.labels),
		"input_size", d.inputSize)
	return d, nil
}

// initializeModel loads the tflite model and allocates the interpreter.
func (d *Detector) initializeModel() error {
	start := time.Now()

	modelData, err := os.ReadFile(d.Settings.Detector.ModelPath)
	if err != nil {
		return errors.New(err).
			Component("detector").
			Category(errors.CategoryModelLoad).
			ModelContext(d.Settings.Detector.ModelPath, "detector").
			Timing("model-load", time.Since(start)).
			Build()
	}

	model := tflite.NewModel(modelData)
	if model == nil {
		return errors.New(fmt.Errorf("cannot load TensorFlow Lite model")).
			Component("detector").
			Category(errors.CategoryModelInit).
			ModelContext(d.Settings.Detector.ModelPath, "detector").
			Context("model_size_mb", len(modelData)/1024/1024).
			Build()
	}

	threads := d.Settings.Detector.Threads
	if threads <= 0 {
		threads = 1
	}

	options := tflite.NewInterpreterOptions()
	if d.Settings.Detector.UseXNNPACK {
		delegate := xnnpack.New(xnnpack.DelegateOptions{NumThreads: int32(threads)}) //nolint:gosec // G115: thread count from config, safe conversion
		if delegate == nil {
			logger.Warn("failed to create XNNPACK delegate, falling back to default CPU")
			options.SetNumThread(threads)
		} else {
			options.AddDelegate(delegate)
			options.SetNumThread(1)
		}
	} else {
		options.SetNumThread(threads)
	}

	options.SetErrorReporter(func(msg string, userData any) {
		logger.Error("tflite error", "message", msg)
	}, nil)

	d.interpreter = tflite.NewInterpreter(model, options)
	if d.interpreter == nil {
		return errors.Newf("cannot create detector interpreter").
			Component("detector").
			Category(errors.CategoryModelInit).
			Build()
	}
	if status := d.interpreter.AllocateTensors(); status != tflite.OK {
		return errors.Newf("detector tensor allocation failed").
			Component("detector").
			Category(errors.CategoryModelInit).
			Build()
	}

	return nil
}

// IsReady reports whether the model is loaded and the detector can serve
// frames.
func (d *Detector) IsReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// SupportedLabels returns a copy of the class labels the model can emit.
func (d *Detector) SupportedLabels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// Detect runs the primary model over a single frame and returns every
// detection at or above the configured threshold, ordered as the model
// emitted them.
func (d *Detector) Detect(frame *fauna.ImageFrame) ([]fauna.RecognitionResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return nil, fauna.ErrModelNotReady
	}

	img, err := imaging.Decode(frame)
	if err != nil {
		return nil, err
	}
	origW := img.Bounds().Dx()
	origH := img.Bounds().Dy()

	start := time.Now()

	input := d.interpreter.GetInputTensor(0)
	copy(input.Float32s(), imaging.ToTensor(img, d.inputSize))

	if status := d.interpreter.Invoke(); status != tflite.OK {
		return nil, errors.Newf("detector inference failed").
			Component("detector").
			Category(errors.CategoryInference).
			Timing("invoke", time.Since(start)).
			Build()
	}

	// SSD detection output layout: boxes [1,N,4], classes [1,N],
	// scores [1,N], count [1]
	boxes := d.interpreter.GetOutputTensor(0).Float32s()
	classes := d.interpreter.GetOutputTensor(1).Float32s()
	scores := d.interpreter.GetOutputTensor(2).Float32s()
	count := int(d.interpreter.GetOutputTensor(3).Float32s()[0])

	results := parseDetections(boxes, classes, scores, count,
		d.labels, d.Settings.Detector.Threshold, origW, origH)

	logger.Debug("frame analyzed",
		"detections", len(results),
		"duration_ms", time.Since(start).Milliseconds())
	return results, nil
}

// parseDetections converts raw SSD output tensors into domain detections.
// Boxes arrive normalized as [ymin, xmin, ymax, xmax] and are scaled back
// to the original frame size.
func parseDetections(boxes, classes, scores []float32, count int, labels []string, threshold float64, origW, origH int) []fauna.RecognitionResult {
	if count > len(scores) {
		count = len(scores)
	}

	now := time.Now()
	var results []fauna.RecognitionResult
	for i := 0; i < count; i++ {
		score := float64(scores[i])
		if score < threshold {
			continue
		}

		classIdx := int(classes[i])
		if classIdx < 0 || classIdx >= len(labels) {
			continue
		}

		box := scaleBox(boxes[i*4:i*4+4], origW, origH)
		results = append(results, fauna.RecognitionResult{
			AnimalName:  labels[classIdx],
			Confidence:  score,
			BoundingBox: &box,
			Timestamp:   now,
		})
	}
	return results
}
