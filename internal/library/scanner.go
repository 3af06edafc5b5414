// This file contains the main logic for scanning a library directory.
// It collects the supported book files, extracts their metadata and
// builds the batch of rename plans shown in previews.

package library

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmalloy/bindery/internal/extract"
	"github.com/tmalloy/bindery/internal/jobs"
	"github.com/tmalloy/bindery/internal/models"
	"github.com/tmalloy/bindery/internal/renamer"
)

// IsSupportedBook reports whether a filename is a book type we can
// extract metadata from.
func IsSupportedBook(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return extract.SupportedExt(ext)
}

// CollectBooks returns the supported book files of dir, sorted by name.
// The scan is not recursive: a batch always covers exactly one
// directory.
func CollectBooks(dir string) ([]models.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []models.SourceFile
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedBook(entry.Name()) {
			continue
		}
		name := entry.Name()
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		files = append(files, models.SourceFile{
			Path: filepath.Join(dir, name),
			Stem: strings.TrimSuffix(name, filepath.Ext(name)),
			Ext:  ext,
		})
	}
	return files, nil
}

// ScanDirectory extracts metadata from every book in dir and resolves
// the full batch of rename plans, including the collision pass against
// the directory's current contents.
func ScanDirectory(ctx jobs.JobContext, dir string) (models.Batch, error) {
	jobId := "library-scan"
	sendProgress(ctx, jobId, "Scanning directory...", 0, false)

	files, err := CollectBooks(dir)
	if err != nil {
		sendProgress(ctx, jobId, "Scan failed.", 100, true)
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	// Every existing entry claims its name, books or not: a proposed
	// name must not collide with anything on disk.
	existingNames := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		existingNames[entry.Name()] = struct{}{}
	}

	inputs := make([]renamer.SourceFileMeta, 0, len(files))
	for i, file := range files {
		progress := float64(i) / float64(len(files)) * 100
		sendProgress(ctx, jobId, fmt.Sprintf("Reading metadata: %s", file.Name()), progress, false)
		inputs = append(inputs, renamer.SourceFileMeta{
			File: file,
			Meta: extract.FromFile(file.Path),
		})
	}

	batch := renamer.ResolveBatch(inputs, existingNames)
	sendProgress(ctx, jobId, fmt.Sprintf("Scan complete: %d book(s).", len(batch)), 100, true)
	return batch, nil
}

// RunScanJob is the scheduled wrapper around ScanDirectory. It scans
// the configured library path and reports how many plans would change
// a filename.
func RunScanJob(ctx jobs.JobContext) {
	dir := ctx.Config().Library.Path
	batch, err := ScanDirectory(ctx, dir)
	if err != nil {
		log.Printf("Scheduled scan of %s failed: %v", dir, err)
		return
	}

	changed := 0
	for _, plan := range batch {
		if !plan.Same() {
			changed++
		}
	}
	log.Printf("Scan of %s complete: %d book(s), %d pending rename(s)", dir, len(batch), changed)
}
