package detector

import (
	"bufio"
	"os"
	"strings"

	"github.com/faunadex/faunadex-go/internal/errors"
)

// defaultLabels is the class list of the bundled detector model. Index
// positions must match the model's class indices. "Giraffle" matches the
// label baked into the model file, not a typo here.
var defaultLabels = []string{
	"Bird",
	"Cats",
	"Cow",
	"Deer",
	"Dog",
	"Elephant",
	"Giraffle",
	"Person",
	"Pig",
	"Sheep",
}

// loadLabels loads class labels from the configured file, or falls back to
// the embedded label set when no path is configured.
func (d *Detector) loadLabels() error {
	if d.Settings.Detector.LabelPath == "" {
		d.labels = make([]string, len(defaultLabels))
		copy(d.labels, defaultLabels)
		return nil
	}

	labels, err := readLabelFile(d.Settings.Detector.LabelPath)
	if err != nil {
		return errors.New(err).
			Component("detector").
			Category(errors.CategoryLabelLoad).
			Context("label_path", d.Settings.Detector.LabelPath).
			Build()
	}
	d.labels = labels
	return nil
}

// readLabelFile reads one label per line, skipping blank lines.
func readLabelFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.Newf("label file %s contains no labels", path).
			Component("detector").
			Category(errors.CategoryLabelLoad).
			Build()
	}
	return labels, nil
}
