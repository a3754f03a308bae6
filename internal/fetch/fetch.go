// Package fetch downloads the vendor installer into the workspace. The
// download is a single attempt: any transport failure is fatal and surfaces
// immediately to the operator rather than being retried behind a backoff.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/output"
)

// Download retrieves url into dest, streaming through a progress bar when
// the response declares a content length. The blob is untrusted input; it
// is written to disk verbatim and never interpreted here.
func Download(url, dest string) error {
	log.WithFields(log.Fields{"url": url, "dest": dest}).Debug("downloading installer")

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download of %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed: HTTP %s", url, resp.Status)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dest, err)
	}
	defer out.Close()

	var w io.Writer = out
	var bar *output.ProgressBar
	if resp.ContentLength > 0 {
		desc := fmt.Sprintf("%s (%s)", filepath.Base(dest), humanize.Bytes(uint64(resp.ContentLength)))
		bar = output.NewProgress(resp.ContentLength, desc)
		w = io.MultiWriter(out, bar)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("download of %s interrupted after %s: %w", url, humanize.Bytes(uint64(n)), err)
	}
	if bar != nil {
		bar.Finish()
	}

	log.WithField("bytes", n).Debug("download complete")
	return nil
}
