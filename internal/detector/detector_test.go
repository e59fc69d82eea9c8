package detector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLabelsOrder(t *testing.T) {
	t.Parallel()

	// class indices are load bearing, the model emits positions not names
	assert.Equal(t, "Bird", defaultLabels[0])
	assert.Equal(t, "Dog", defaultLabels[4])
	assert.Equal(t, "Giraffle", defaultLabels[6])
	assert.Equal(t, "Sheep", defaultLabels[9])
	assert.Len(t, defaultLabels, 10)
}

func TestReadLabelFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("Bird\n\nDog\nCats\n"), 0o644))

	labels, err := readLabelFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bird", "Dog", "Cats"}, labels)
}

func TestReadLabelFileEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := readLabelFile(path)
	assert.Error(t, err)
}

func TestScaleBox(t *testing.T) {
	t.Parallel()

	box := scaleBox([]float32{0.25, 0.25, 0.75, 0.75}, 640, 480)
	assert.Equal(t, 160, box.X)
	assert.Equal(t, 120, box.Y)
	assert.Equal(t, 320, box.Width)
	assert.Equal(t, 240, box.Height)
}

func TestScaleBoxClamped(t *testing.T) {
	t.Parallel()

	// models occasionally emit coordinates slightly outside [0,1]
	box := scaleBox([]float32{-0.1, -0.1, 1.2, 1.2}, 100, 100)
	assert.Equal(t, 0, box.X)
	assert.Equal(t, 0, box.Y)
	assert.Equal(t, 100, box.Width)
	assert.Equal(t, 100, box.Height)
}

func TestParseDetections(t *testing.T) {
	t.Parallel()

	boxes := []float32{
		0.1, 0.1, 0.5, 0.5,
		0.2, 0.2, 0.6, 0.6,
		0.0, 0.0, 1.0, 1.0,
	}
	classes := []float32{4, 0, 2} // Dog, Bird, Cow
	scores := []float32{0.92, 0.40, 0.61}

	results := parseDetections(boxes, classes, scores, 3, defaultLabels, 0.5, 640, 480)
	require.Len(t, results, 2)
	assert.Equal(t, "Dog", results[0].AnimalName)
	assert.InDelta(t, 0.92, results[0].Confidence, 0.001)
	assert.Equal(t, "Cow", results[1].AnimalName)
	require.NotNil(t, results[0].BoundingBox)
	assert.Equal(t, 64, results[0].BoundingBox.X)
	assert.Equal(t, 48, results[0].BoundingBox.Y)
}

func TestParseDetectionsOutOfRangeClass(t *testing.T) {
	t.Parallel()

	boxes := []float32{0.1, 0.1, 0.5, 0.5}
	results := parseDetections(boxes, []float32{42}, []float32{0.99}, 1, defaultLabels, 0.5, 640, 480)
	assert.Empty(t, results)
}

func TestParseDetectionsCountClamped(t *testing.T) {
	t.Parallel()

	boxes := []float32{0.1, 0.1, 0.5, 0.5}
	// count tensor claims more detections than the score tensor holds
	results := parseDetections(boxes, []float32{0}, []float32{0.9}, 10, defaultLabels, 0.5, 640, 480)
	assert.Len(t, results, 1)
}
