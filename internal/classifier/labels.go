package classifier

import (
	"bufio"
	"os"
	"strings"

	"github.com/faunadex/faunadex-go/internal/errors"
)

// readLabelFile reads one label per line, skipping blank lines. The
// classifier always loads its vocabulary from disk, there is no embedded
// fallback for an open vocabulary model.
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
			Component("classifier").
			Category(errors.CategoryLabelLoad).
			Build()
	}
	return labels, nil
}
