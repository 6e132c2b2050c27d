package audio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"audioscribe/internal/app/model"
)

// extra MIME types the platform tables commonly miss
var mimeByExtension = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
	".mp4":  "video/mp4",
}

// DetectMimeType guesses the MIME type from the file extension.
// The file must exist; unknown extensions are an error.
func DetectMimeType(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if mimeType, ok := mimeByExtension[ext]; ok {
		return mimeType, nil
	}
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType, nil
	}

	return "", fmt.Errorf("unsupported file type: %s", filePath)
}

func GetAudioDuration(filePath string) (int, error) {
	durationFloat, err := GetAudioDurationSeconds(filePath)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}

func GetAudioDurationSeconds(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
}

func ConvertToMp3(fileName string, fileFullPath string, mp3FilePath string) error {
	if _, err := os.Stat(mp3FilePath); os.IsNotExist(err) {
		log.Printf("converting to mp3: %s\n", fileName)

		cmd := exec.Command("ffmpeg", "-i", fileFullPath, "-vn", "-acodec", "libmp3lame", mp3FilePath)

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		err := cmd.Run()
		if err != nil {
			return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
		}

		log.Printf("mp3 conversion completed: '%s'\n", mp3FilePath)
	} else {
		log.Printf("mp3 file already exists for '%s', skipping conversion.\n", fileName)
	}
	return nil
}

func Is16kHzWavFile(filePath string) (bool, error) {
	cmd := exec.Command("ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}

	var probeOutput model.FFProbeOutput
	err = json.Unmarshal(output, &probeOutput)
	if err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}

	return false, nil
}

func ConvertTo16kHzWav(inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
	err := convertTo16kHzWav(inputFilePath, outputFilePath)
	if err != nil {
		return "", err
	}

	return outputFilePath, nil
}

func convertTo16kHzWav(inputAudioFilePath, outputWavPath string) error {
	if _, err := os.Stat(outputWavPath); !os.IsNotExist(err) {
		log.Printf("16kHz WAV file already exists for '%s', skipping conversion.\n", inputAudioFilePath)
		return nil
	}

	if _, err := DetectMimeType(inputAudioFilePath); err != nil {
		return err
	}

	log.Printf("convert to 16kHz wav: %s\n", inputAudioFilePath)

	cmd := exec.Command("ffmpeg", "-i", inputAudioFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	log.Printf("16kHz WAV conversion completed: '%s'\n", outputWavPath)
	return nil
}
