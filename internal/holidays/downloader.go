package holidays

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrDownloadCanceled is returned when the user quits the progress screen
// before the download finishes.
var ErrDownloadCanceled = errors.New("holiday download canceled")

// YearInfo summarises which years a holiday table covers.
type YearInfo struct {
	MinYear int
	MaxYear int
	Count   int
}

// Years reports the span of years present in the table.
func (t Table) Years() YearInfo {
	var info YearInfo
	for year := range t {
		if info.Count == 0 || year < info.MinYear {
			info.MinYear = year
		}
		if info.Count == 0 || year > info.MaxYear {
			info.MaxYear = year
		}
		info.Count++
	}
	return info
}

// Progress is a snapshot of a running download. Total is -1 when the server
// did not announce a length.
type Progress struct {
	Done  int64
	Total int64
	Speed float64 // bytes per second
}

// Download fetches the holiday table at url and replaces dest with it. The
// body must decode as a non-empty table; on any failure dest is untouched.
// onProgress may be nil.
func Download(ctx context.Context, url, dest string, onProgress func(Progress)) (YearInfo, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return YearInfo{}, fmt.Errorf("failed to create directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return YearInfo{}, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return YearInfo{}, fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return YearInfo{}, fmt.Errorf("HTTP %s", resp.Status)
	}

	tmp, err := os.CreateTemp(dir, ".holidays-*.json")
	if err != nil {
		return YearInfo{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var done int64
	start := time.Now()
	reader := io.TeeReader(resp.Body, &progressWriter{
		onWrite: func(n int) {
			done += int64(n)
			if onProgress == nil {
				return
			}
			p := Progress{Done: done, Total: resp.ContentLength}
			if elapsed := time.Since(start).Seconds(); elapsed > 0 {
				p.Speed = float64(done) / elapsed
			}
			onProgress(p)
		},
	})
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return YearInfo{}, fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return YearInfo{}, fmt.Errorf("failed to write file: %w", err)
	}

	table, err := LoadFromFile(tmp.Name())
	if err != nil {
		return YearInfo{}, err
	}
	info := table.Years()
	if info.Count == 0 {
		return YearInfo{}, errors.New("no year data found")
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return YearInfo{}, fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	return info, nil
}

type progressWriter struct {
	onWrite func(int)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	if pw.onWrite != nil {
		pw.onWrite(len(p))
	}
	return len(p), nil
}

type downloadProgressMsg Progress

type downloadCompleteMsg struct {
	fileSize int64
	modTime  time.Time
	yearInfo YearInfo
	err      error
}

type downloadModel struct {
	ctx        context.Context
	cancel     context.CancelFunc
	url        string
	destPath   string
	progress   Progress
	done       bool
	result     downloadCompleteMsg
	progressCh chan downloadProgressMsg
	completeCh chan downloadCompleteMsg
}

func newDownloadModel(ctx context.Context, cancel context.CancelFunc, url, destPath string) downloadModel {
	return downloadModel{
		ctx:        ctx,
		cancel:     cancel,
		url:        url,
		destPath:   destPath,
		progress:   Progress{Total: -1},
		progressCh: make(chan downloadProgressMsg, 10),
		completeCh: make(chan downloadCompleteMsg, 1),
	}
}

func (m downloadModel) Init() tea.Cmd {
	return tea.Batch(
		m.startDownload,
		m.listenProgress,
	)
}

func (m downloadModel) listenProgress() tea.Msg {
	select {
	case msg := <-m.progressCh:
		return msg
	case msg := <-m.completeCh:
		return msg
	}
}

func (m downloadModel) startDownload() tea.Msg {
	go func() {
		info, err := Download(m.ctx, m.url, m.destPath, func(p Progress) {
			select {
			case m.progressCh <- downloadProgressMsg(p):
			default:
				// Channel is full, skip this update
			}
		})
		msg := downloadCompleteMsg{yearInfo: info, err: err}
		if err == nil {
			if st, statErr := os.Stat(m.destPath); statErr == nil {
				msg.fileSize = st.Size()
				msg.modTime = st.ModTime()
			}
		}
		m.completeCh <- msg
	}()
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.done {
			// Any key leaves the result screen.
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			if m.cancel != nil {
				m.cancel()
			}
			m.done = true
			m.result = downloadCompleteMsg{err: ErrDownloadCanceled}
			return m, tea.Quit
		}
	case downloadCompleteMsg:
		m.done = true
		m.result = msg
		return m, nil
	case downloadProgressMsg:
		m.progress = Progress(msg)
		return m, m.listenProgress
	}

	return m, nil
}

func (m downloadModel) View() string {
	if m.done {
		if m.result.err != nil {
			var b strings.Builder
			fmt.Fprintf(&b, "Download failed\n\n%v\n\n", m.result.err)
			b.WriteString("You can fetch the holiday file by hand:\n")
			fmt.Fprintf(&b, "1. download %s\n", m.url)
			fmt.Fprintf(&b, "2. save it as %s\n\n", m.destPath)
			b.WriteString("Press any key to exit...\n")
			return b.String()
		}
		return m.Summary() + "\nPress any key to exit...\n"
	}

	const barWidth = 50
	var progressBar, progressInfo string
	if m.progress.Total > 0 {
		percent := min(float64(m.progress.Done)/float64(m.progress.Total), 1.0)
		filled := int(percent * barWidth)
		progressBar = strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		progressInfo = fmt.Sprintf("%s / %s  %s  %.1f%%",
			formatBytes(m.progress.Done), formatBytes(m.progress.Total), formatSpeed(m.progress.Speed), percent*100)
	} else {
		progressBar = strings.Repeat("░", barWidth)
		progressInfo = formatBytes(m.progress.Done)
		if m.progress.Speed > 0 {
			progressInfo += "  " + formatSpeed(m.progress.Speed)
		}
	}

	return fmt.Sprintf("Downloading holiday data...\n\n[%s]\n%s\n\nPress Ctrl+C to cancel\n", progressBar, progressInfo)
}

// Summary describes a finished download.
func (m downloadModel) Summary() string {
	return FormatSummary(m.destPath, m.result.fileSize, m.result.modTime, m.result.yearInfo)
}

// FormatSummary describes a holiday file written to path.
func FormatSummary(path string, size int64, modTime time.Time, info YearInfo) string {
	var b strings.Builder
	b.WriteString("Holiday data updated\n\n")
	if size > 0 {
		fmt.Fprintf(&b, "size:    %s\n", formatBytes(size))
	}
	if !modTime.IsZero() {
		fmt.Fprintf(&b, "updated: %s\n", modTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "saved:   %s\n", path)
	if info.Count > 0 {
		fmt.Fprintf(&b, "years:   %d-%d (%d years)\n", info.MinYear, info.MaxYear, info.Count)
	}
	return b.String()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatSpeed(speed float64) string {
	return fmt.Sprintf("%s/s", formatBytes(int64(speed)))
}

// DownloadHolidays downloads the holiday table from url into dest behind a
// progress screen. It returns the download error, if any, once the user
// dismisses the screen.
func DownloadHolidays(ctx context.Context, url, dest string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newDownloadModel(ctx, cancel, url, dest)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(downloadModel); ok && fm.result.err != nil {
		return fm.result.err
	}
	return nil
}
