// Package classifier runs the fallback image classification model. It is
// consulted when the primary detector is unsure, returns at most one label
// and never a bounding box.
package classifier

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	tflite "github.com/tphakala/go-tflite"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/imaging"
	"github.com/faunadex/faunadex-go/internal/logging"
)

var logger = logging.ForService("classifier")

// Classifier wraps the fallback classification model. A single instance is
// shared by all sessions; Classify serializes access to the interpreter.
type Classifier struct {
	Settings *conf.Settings

	interpreter *tflite.Interpreter
	labels      []string
	inputSize   int
	ready       bool

	mu sync.Mutex
}

// candidate is one scored label from the raw classifier output.
type candidate struct {
	Label string
	Score float64
}

// New creates and initializes a Classifier from settings.
func New(settings *conf.Settings) (*Classifier, error) {
	c := &Classifier{
		Settings:  settings,
		inputSize: settings.Classifier.InputSize,
	}

	if err := c.initializeModel(); err != nil {
		return nil, err
	}

	labels, err := readLabelFile(settings.Classifier.LabelPath)
	if err != nil {
		return nil, errors.New(err).
			Component("classifier").
			Category(errors.CategoryLabelLoad).
			Context("label_path", settings.Classifier.LabelPath).
			Build()
	}
	c.labels = labels

	c.ready = true
	logger.Info("classifier model initialized",
		"model", settings.Classifier.ModelPath,
		"labels", len(c.labels),
		"input_size", c.inputSize)
	return c, nil
}

func (c *Classifier) initializeModel() error {
	start := time.Now()

	modelData, err := os.ReadFile(c.Settings.Classifier.ModelPath)
	if err != nil {
		return errors.New(err).
			Component("classifier").
			Category(errors.CategoryModelLoad).
			ModelContext(c.Settings.Classifier.ModelPath, "classifier").
			Timing("model-load", time.Since(start)).
			Build()
	}

	model := tflite.NewModel(modelData)
	if model == nil {
		return errors.New(fmt.Errorf("cannot load TensorFlow Lite model")).
			Component("classifier").
			Category(errors.CategoryModelInit).
			ModelContext(c.Settings.Classifier.ModelPath, "classifier").
			Context("model_size_mb", len(modelData)/1024/1024).
			Build()
	}

	options := tflite.NewInterpreterOptions()
	options.SetNumThread(1)
	options.SetErrorReporter(func(msg string, userData any) {
		logger.Error("tflite error", "message", msg)
	}, nil)

	c.interpreter = tflite.NewInterpreter(model, options)
	if c.interpreter == nil {
		return errors.Newf("cannot create classifier interpreter").
			Component("classifier").
			Category(errors.CategoryModelInit).
			Build()
	}
	if status := c.interpreter.AllocateTensors(); status != tflite.OK {
		return errors.Newf("classifier tensor allocation failed").
			Component("classifier").
			Category(errors.CategoryModelInit).
			Build()
	}

	return nil
}

// IsReady reports whether the model is loaded.
func (c *Classifier) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Classify runs the fallback model over a frame and maps its open
// vocabulary output to a canonical species name. An empty string with a
// nil error means the classifier has no opinion on this frame.
func (c *Classifier) Classify(frame *fauna.ImageFrame) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return "", fauna.ErrModelNotReady
	}

	img, err := imaging.Decode(frame)
	if err != nil {
		return "", err
	}

	start := time.Now()

	input := c.interpreter.GetInputTensor(0)
	copy(input.Float32s(), imaging.ToTensor(img, c.inputSize))

	if status := c.interpreter.Invoke(); status != tflite.OK {
		return "", errors.Newf("classifier inference failed").
			Component("classifier").
			Category(errors.CategoryInference).
			Timing("invoke", time.Since(start)).
			Build()
	}

	scores := c.interpreter.GetOutputTensor(0).Float32s()
	candidates := topCandidates(scores, c.labels,
		c.Settings.Classifier.TopN, c.Settings.Classifier.MinScore)

	species := mapCandidates(candidates)
	logger.Debug("frame classified",
		"candidates", len(candidates),
		"species", species,
		"duration_ms", time.Since(start).Milliseconds())
	return species, nil
}

// topCandidates selects the n highest scoring labels at or above minScore,
// ordered by descending score. Ties keep the lower class index first.
func topCandidates(scores []float32, labels []string, n int, minScore float64) []candidate {
	limit := len(scores)
	if len(labels) < limit {
		limit = len(labels)
	}

	candidates := make([]candidate, 0, limit)
	for i := 0; i < limit; i++ {
		score := float64(scores[i])
		if score < minScore {
			continue
		}
		candidates = append(candidates, candidate{Label: labels[i], Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
