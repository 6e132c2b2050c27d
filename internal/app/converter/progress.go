package converter

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/util/files"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

func (pm *ProgressManager) CreateBar(total int, description string) *ProgressBar {
	if !pm.enabled || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

func (pb *ProgressBar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

func (pm *ProgressManager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *ProgressManager) Shutdown() {
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}

// ProgressAwareConverter adds a progress bar and bounded parallelism on top
// of the plain Converter.
type ProgressAwareConverter struct {
	*Converter
	progressManager *ProgressManager
}

func NewProgressAwareConverter(converter *Converter, config ProgressConfig) *ProgressAwareConverter {
	return &ProgressAwareConverter{
		Converter:       converter,
		progressManager: NewProgressManager(config),
	}
}

func (pac *ProgressAwareConverter) Close() error {
	if pac.progressManager != nil {
		pac.progressManager.Shutdown()
	}
	return pac.Converter.Close()
}

func (pac *ProgressAwareConverter) createProgressBar(total int, description string) *ProgressBar {
	if pac.progressManager == nil {
		return &ProgressBar{enabled: false}
	}
	return pac.progressManager.CreateBar(total, description)
}

func (pac *ProgressAwareConverter) waitForProgress() {
	if pac.progressManager != nil {
		pac.progressManager.Wait()
	}
}

func FormatProgressDescription(action string, userNickname string) string {
	if userNickname != "" {
		return fmt.Sprintf("%s (%s)", action, userNickname)
	}
	return action
}

// DoWithProgress transcribes up to convertCount unprocessed audio files from
// inputDir with a progress bar, running up to parallel files at once.
func (pac *ProgressAwareConverter) DoWithProgress(userNickname string, inputDir string, convertCount int, parallel int) error {
	fileInfos := files.GetAllAudioFiles(inputDir)

	filesToProcess := pac.filterUnProcessedFiles(fileInfos, convertCount)
	if len(filesToProcess) == 0 {
		return nil
	}

	if parallel < 1 {
		parallel = 1
	}

	description := FormatProgressDescription("Transcribing", userNickname)
	progressBar := pac.createProgressBar(len(filesToProcess), description)
	defer pac.waitForProgress()

	var wg sync.WaitGroup
	sem := make(chan bool, parallel)

	for _, file := range filesToProcess {
		wg.Add(1)
		go func(file model.FileInfo) {
			defer wg.Done()
			defer progressBar.Increment()

			sem <- true
			err := pac.convertToText(userNickname, file)
			<-sem

			if err != nil {
				log.Printf("Error converting file %s: %v\n", file.Name, err)
			}
		}(file)
	}
	wg.Wait()
	progressBar.Complete()
	return nil
}
