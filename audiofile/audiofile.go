// Package audiofile reads input text and reads and writes mono 16-bit PCM
// WAV files.
package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mitchellh/go-homedir"
)

const (
	bitDepth      = 16
	channels      = 1
	formatPCM     = 1
	maxSampleRate = math.MaxInt32
)

// ErrNotWAV is returned by ReadWAV for files without a valid WAV header.
var ErrNotWAV = errors.New("audiofile: not a WAV file")

// ReadText returns the contents of the file at path. A leading ~ is
// expanded to the home directory.
func ReadText(path string) ([]byte, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	return data, nil
}

// WriteWAV writes samples as a mono 16-bit PCM WAV file. An empty slice
// writes a valid file with no audio frames.
func WriteWAV(path string, sampleRate float64, samples []int16) (err error) {
	if sampleRate < 1 || sampleRate > maxSampleRate || sampleRate != math.Trunc(sampleRate) {
		return fmt.Errorf("audiofile: sample rate must be a positive integer: %f", sampleRate)
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	file, err := os.Create(expanded)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close wav: %w", cerr)
		}
	}()

	sr := int(sampleRate)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sr, NumChannels: channels},
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(file, sr, bitDepth, channels, formatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}

	return nil
}

// ReadWAV decodes a mono 16-bit PCM WAV file and returns its sample rate
// and samples.
func ReadWAV(path string) (float64, []int16, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w", path, err)
	}

	file, err := os.Open(expanded)
	if err != nil {
		return 0, nil, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return 0, nil, fmt.Errorf("%w: %s", ErrNotWAV, expanded)
	}

	if dec.NumChans != channels || dec.BitDepth != bitDepth {
		return 0, nil, fmt.Errorf("audiofile: want mono 16-bit PCM, got %d channels at %d bits", dec.NumChans, dec.BitDepth)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return 0, nil, fmt.Errorf("decode wav: %w", err)
	}

	out := make([]int16, len(pcm.Data))
	for i, s := range pcm.Data {
		out[i] = int16(s)
	}

	return float64(dec.SampleRate), out, nil
}
