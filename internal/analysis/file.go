package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/datastore"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// RecognizeFile runs the recognition pipeline once on an image file and
// prints the result to stdout.
func RecognizeFile(settings *conf.Settings, imagePath string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer closeDataStore(store)

	pipeline, err := buildPipeline(settings, store)
	if err != nil {
		return err
	}
	defer pipeline.close()

	frame := &fauna.ImageFrame{
		Data:   data,
		Format: strings.TrimPrefix(filepath.Ext(imagePath), "."),
	}

	recognition, err := pipeline.processor.RecognizeImage(context.Background(), frame)
	if err != nil {
		return err
	}
	if recognition == nil {
		fmt.Println("No animal recognized")
		return nil
	}

	animal := recognition.Animal
	fmt.Printf("Recognized: %s (%s)\n", animal.Name, animal.ScientificName)
	fmt.Printf("Confidence: %.2f (%s, %s)\n", recognition.Confidence, recognition.ConfidenceLevel, recognition.Method)
	fmt.Printf("Class: %s, diet: %s, status: %s\n",
		animal.Class.Display(), animal.Diet.Display(), animal.ConservationStatus.Display())
	if animal.Description != "" {
		fmt.Printf("\n%s\n", animal.Description)
	}
	if recognition.FunFact != "" {
		fmt.Printf("\nFun fact: %s\n", recognition.FunFact)
	}

	return nil
}
