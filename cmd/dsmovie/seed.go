package main

import (
	"archive/zip"
	"context"
	"dsmovie/movie"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the MovieLens catalog into the movies table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.log()
			if zipURL == "" {
				zipURL = ctx.config.Seed.DatasetURL
			}

			db, err := ctx.openDB()
			if err != nil {
				return fmt.Errorf("cannot open postgres connection: %w", err)
			}

			cleanup := func() {}
			if csvPath == "" {
				logger.Infow("downloading dataset", "url", zipURL)
				path, c, err := downloadAndExtract(cmd.Context(), zipURL)
				if err != nil {
					return fmt.Errorf("failed to download dataset: %w", err)
				}
				csvPath = path
				cleanup = c
			}
			defer cleanup()

			count, err := importMovies(cmd.Context(), db, csvPath, limit)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			logger.Infow("import completed", "rows", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	cmd.Flags().StringVar(&zipURL, "url", "", "MovieLens zip URL (defaults to SEED_DATASET_URL)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")

	return cmd
}

func downloadAndExtract(ctx context.Context, zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(ctx, zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if filepath.Base(file.Name) != "movies.csv" {
			continue
		}
		return copyZipEntry(file, filepath.Join(destDir, "movies.csv"))
	}

	return "", errors.New("movies.csv not found in zip")
}

func copyZipEntry(file *zip.File, destPath string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return destPath, nil
}

// importMovies upserts rows by id, keeping the rating accumulators of movies
// that already exist, then moves the id sequence past the imported ids.
func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idxMovieID, idxTitle, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	const stmt = `
INSERT INTO movies (id, title)
VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title
`
	const resetSequence = `SELECT setval(pg_get_serial_sequence('movies', 'id'), COALESCE(MAX(id), 1)) FROM movies`

	count := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for limit <= 0 || count < limit {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			movieID, title, ok := parseMovieRecord(record, idxMovieID, idxTitle)
			if !ok {
				continue
			}

			if err := tx.Exec(stmt, movieID, title).Error; err != nil {
				return err
			}
			count++
		}
		return tx.Exec(resetSequence).Error
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxMovieID, idxTitle := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			idxMovieID = i
		case "title":
			idxTitle = i
		}
	}
	if idxMovieID == -1 || idxTitle == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxMovieID, idxTitle, nil
}

// parseMovieRecord rejects rows whose title would not pass movie validation
// and cuts long titles to the column width.
func parseMovieRecord(record []string, idxMovieID, idxTitle int) (int64, string, bool) {
	if idxMovieID >= len(record) || idxTitle >= len(record) {
		return 0, "", false
	}

	movieID, err := strconv.ParseInt(strings.TrimSpace(record[idxMovieID]), 10, 64)
	if err != nil || movieID <= 0 {
		return 0, "", false
	}

	title := strings.TrimSpace(record[idxTitle])
	if utf8.RuneCountInString(title) < movie.MinTitleLength {
		return 0, "", false
	}
	if utf8.RuneCountInString(title) > movie.MaxTitleLength {
		title = strings.TrimSpace(string([]rune(title)[:movie.MaxTitleLength]))
	}
	return movieID, title, true
}
