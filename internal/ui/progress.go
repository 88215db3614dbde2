package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"casefiles/pkg/utils"
)

// ProgressBar renders one progress bar per transferred file.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

func NewProgressBar() *ProgressBar {
	return &ProgressBar{}
}

func (p *ProgressBar) Start(name string, size int64) {
	fmt.Printf("\nDownloading %s (%s)...\n", name, utils.FormatSize(size))
	p.bar = progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", name)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

func (p *ProgressBar) Progress(transferred, total int64) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Set64(transferred)
}

func (p *ProgressBar) Done(name string) {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
	fmt.Printf("\nDownload of %s complete\n", name)
}
