package transfer

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"casefiles/internal/models"
	"casefiles/pkg/utils"
)

// ProgressFunc is invoked after every transferred chunk with the cumulative
// bytes transferred and the file's total size.
type ProgressFunc func(transferred, total int64)

// Transport is the remote side as the downloader sees it: list a directory,
// probe a single path, stream a file into a local sink.
type Transport interface {
	List(dir string) ([]models.Entry, error)
	Stat(path string) (models.Entry, error)
	Fetch(remotePath string, dst io.Writer, fn ProgressFunc) (int64, error)
}

// Reporter receives per-file transfer notifications.
type Reporter interface {
	Start(name string, size int64)
	Progress(transferred, total int64)
	Done(name string)
}

// NopReporter discards all notifications.
type NopReporter struct{}

func (NopReporter) Start(string, int64)   {}
func (NopReporter) Progress(int64, int64) {}
func (NopReporter) Done(string)           {}

// Downloader mirrors remote trees onto the local filesystem, one file at a
// time, depth first. Entries whose name is in the exclusion set are skipped
// entirely: never transferred, never recursed into.
type Downloader struct {
	transport Transport
	exclude   map[string]struct{}
	reporter  Reporter
}

func New(transport Transport, excludes []string, reporter Reporter) *Downloader {
	if reporter == nil {
		reporter = NopReporter{}
	}
	exclude := make(map[string]struct{}, len(excludes))
	for _, name := range excludes {
		exclude[name] = struct{}{}
	}
	return &Downloader{
		transport: transport,
		exclude:   exclude,
		reporter:  reporter,
	}
}

// Excluded reports whether filename is excluded. Matching is by exact name,
// not by pattern.
func (d *Downloader) Excluded(filename string) bool {
	_, ok := d.exclude[filename]
	return ok
}

// DownloadDirectory copies everything under remoteDir into localDir,
// recreating the directory structure. The first error aborts the remainder
// of the walk.
func (d *Downloader) DownloadDirectory(remoteDir, localDir string) (*models.DownloadResult, error) {
	startTime := time.Now()

	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", localDir, err)
	}

	result := &models.DownloadResult{}
	if err := d.walk(remoteDir, localDir, result); err != nil {
		return nil, err
	}

	for _, item := range result.Items {
		result.TotalSizeBytes += item.Size
	}
	result.TotalFiles = len(result.Items)
	result.TotalSizeHuman = utils.FormatSize(result.TotalSizeBytes)
	result.OperationTime = utils.FormatTime(startTime)
	result.DownloadDuration = time.Since(startTime).String()

	return result, nil
}

func (d *Downloader) walk(remoteDir, localDir string, result *models.DownloadResult) error {
	entries, err := d.transport.List(remoteDir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", remoteDir, err)
	}

	for _, entry := range entries {
		if d.Excluded(entry.Name) {
			continue
		}

		remotePath := path.Join(remoteDir, entry.Name)
		localPath := filepath.Join(localDir, entry.Name)

		if entry.IsDir {
			if err := os.MkdirAll(localPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", localPath, err)
			}
			if err := d.walk(remotePath, localPath, result); err != nil {
				return err
			}
			continue
		}

		item, err := d.fetchFile(remotePath, localPath, entry)
		if err != nil {
			return err
		}
		result.Items = append(result.Items, item)
	}

	return nil
}

// DownloadFile transfers a single remote file, with the same progress
// behavior as the directory walk.
func (d *Downloader) DownloadFile(remotePath, localPath string) (models.DownloadItem, error) {
	entry, err := d.transport.Stat(remotePath)
	if err != nil {
		return models.DownloadItem{}, fmt.Errorf("failed to stat %s: %w", remotePath, err)
	}
	return d.fetchFile(remotePath, localPath, entry)
}

func (d *Downloader) fetchFile(remotePath, localPath string, entry models.Entry) (models.DownloadItem, error) {
	d.reporter.Start(entry.Name, entry.Size)

	local, err := os.Create(localPath)
	if err != nil {
		return models.DownloadItem{}, fmt.Errorf("failed to create %s: %w", localPath, err)
	}

	written, err := d.transport.Fetch(remotePath, local, d.reporter.Progress)
	closeErr := local.Close()
	if err != nil {
		return models.DownloadItem{}, fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	if closeErr != nil {
		return models.DownloadItem{}, fmt.Errorf("failed to close %s: %w", localPath, closeErr)
	}

	d.reporter.Done(entry.Name)

	return models.DownloadItem{
		RemotePath: remotePath,
		LocalPath:  localPath,
		Size:       written,
	}, nil
}
