// Package session drives the interactive download flow: authenticate,
// pick a case directory, choose between a whole-folder and a single-file
// download, then tear the connection down on every exit path.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"casefiles/config"
	"casefiles/internal/models"
	"casefiles/internal/sftpclient"
	"casefiles/internal/transfer"
	"casefiles/internal/ui"
	"casefiles/pkg/utils"
)

// Conn is an authenticated connection: the transport operations plus
// teardown.
type Conn interface {
	transfer.Transport
	Close() error
}

// DialFunc authenticates and connects with the given credentials.
type DialFunc func(username, password string) (Conn, error)

// Options pre-seed prompts so command-line flags can skip the corresponding
// questions. Empty fields fall back to interactive input.
type Options struct {
	CaseNumber  string
	Destination string
	AssumeYes   bool
}

type Controller struct {
	cfg      *config.Config
	prompter ui.Prompter
	dial     DialFunc
	reporter transfer.Reporter
	out      io.Writer
	opts     Options
}

func New(cfg *config.Config, prompter ui.Prompter, dial DialFunc, reporter transfer.Reporter, out io.Writer, opts Options) *Controller {
	return &Controller{
		cfg:      cfg,
		prompter: prompter,
		dial:     dial,
		reporter: reporter,
		out:      out,
		opts:     opts,
	}
}

// Reported tells whether err was already explained to the user during the
// session, so callers don't print it a second time.
func Reported(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, sftpclient.ErrAuthentication) ||
		errors.Is(err, sftpclient.ErrTransport)
}

// Run walks the session through its states. The connection, once opened, is
// closed exactly once no matter how the session ends.
func (c *Controller) Run(ctx context.Context) error {
	username, err := c.prompter.Line(ctx, "Enter your user name: ")
	if err != nil {
		return c.abort(err)
	}
	password, err := c.prompter.Password(ctx, "Enter your password: ")
	if err != nil {
		return c.abort(err)
	}

	conn, err := c.dial(username, password)
	if err != nil {
		switch {
		case errors.Is(err, sftpclient.ErrAuthentication):
			fmt.Fprintln(c.out, "\nAuthentication failed. Please check your username and password.")
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(c.out, "\nDownload process aborted.")
		default:
			fmt.Fprintln(c.out, "\nFailed to establish SSH connection. Please check the server details.")
		}
		return err
	}
	fmt.Fprintln(c.out, "SSH connection established.")

	defer func() {
		if cerr := conn.Close(); cerr != nil {
			slog.Warn("Failed to close connection", "error", cerr)
		}
	}()

	downloader := transfer.New(conn, c.cfg.Excludes, c.reporter)

	for {
		caseNumber := c.opts.CaseNumber
		if caseNumber == "" {
			caseNumber, err = c.prompter.Line(ctx, "\nEnter the case number: ")
			if err != nil {
				return c.abort(err)
			}
		}

		localParent := c.opts.Destination
		if localParent == "" {
			localParent, err = c.prompter.Line(ctx, "Enter the local parent directory where you want to save the case folder: ")
			if err != nil {
				return c.abort(err)
			}
		}

		remoteDir := path.Join(c.cfg.RemoteBase, caseNumber)
		entries, listErr := conn.List(remoteDir)
		if listErr != nil {
			// A listing failure means the case directory is missing;
			// re-prompt without dropping the connection.
			fmt.Fprintf(c.out, "\nRemote directory '%s' does not exist.\n", remoteDir)
			c.opts.CaseNumber = ""
			c.opts.Destination = ""
			continue
		}

		localCaseDir := filepath.Join(expandHome(localParent), caseNumber)
		if err := os.MkdirAll(localCaseDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", localCaseDir, err)
		}

		c.printListing(caseNumber, entries)

		whole := c.opts.AssumeYes
		if !whole {
			whole, err = c.askWholeFolder(ctx)
			if err != nil {
				return c.abort(err)
			}
		}

		startTime := time.Now()
		var result *models.DownloadResult
		if whole {
			result, err = downloader.DownloadDirectory(remoteDir, localCaseDir)
			if err != nil {
				return c.abort(err)
			}
		} else {
			result, err = c.downloadSingleFile(ctx, conn, downloader, remoteDir, localCaseDir, startTime)
			if err != nil {
				return c.abort(err)
			}
		}

		result.Host = c.cfg.Host
		result.CaseNumber = caseNumber
		if err := utils.PrintJSON(result); err != nil {
			slog.Warn("Failed to print download summary", "error", err)
		}

		fmt.Fprintln(c.out, "\nDownload process completed.")
		return nil
	}
}

// askWholeFolder loops until the answer is a clear yes or no.
func (c *Controller) askWholeFolder(ctx context.Context) (bool, error) {
	for {
		choice, err := c.prompter.Line(ctx, "\nDo you want to download the entire folder? (yes/no): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(choice) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please enter 'yes' or 'no'.")
		}
	}
}

// downloadSingleFile re-prompts until the filename exists remotely, then
// transfers it.
func (c *Controller) downloadSingleFile(ctx context.Context, conn Conn, downloader *transfer.Downloader, remoteDir, localCaseDir string, startTime time.Time) (*models.DownloadResult, error) {
	var filename string
	for {
		var err error
		filename, err = c.prompter.Line(ctx, "\nEnter the filename you want to download: ")
		if err != nil {
			return nil, err
		}

		_, statErr := conn.Stat(path.Join(remoteDir, filename))
		if statErr == nil {
			break
		}
		if errors.Is(statErr, fs.ErrNotExist) {
			fmt.Fprintf(c.out, "Remote file '%s' does not exist. Please enter a valid filename.\n", filename)
			continue
		}
		return nil, statErr
	}

	item, err := downloader.DownloadFile(path.Join(remoteDir, filename), filepath.Join(localCaseDir, filename))
	if err != nil {
		return nil, err
	}

	return &models.DownloadResult{
		Items:            []models.DownloadItem{item},
		TotalFiles:       1,
		TotalSizeBytes:   item.Size,
		TotalSizeHuman:   utils.FormatSize(item.Size),
		OperationTime:    utils.FormatTime(startTime),
		DownloadDuration: time.Since(startTime).String(),
	}, nil
}

func (c *Controller) printListing(caseNumber string, entries []models.Entry) {
	fmt.Fprintf(c.out, "\nContents of case file directory %s:\n", caseNumber)
	fmt.Fprintln(c.out, "\n*********************************************************")
	fmt.Fprintln(c.out)
	for _, entry := range entries {
		fmt.Fprintln(c.out, " "+entry.Name)
	}
	fmt.Fprintln(c.out, "\n*********************************************************")
}

// abort prints the interrupt message for cancellation-style errors and
// passes everything else through unchanged.
func (c *Controller) abort(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out, "\nDownload process aborted.")
	}
	return err
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
