package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"

	"github.com/spf13/viper"
)

// Notifier plays attention sounds on a display terminal.
type Notifier interface {
	Chime() error
	AnnounceReady(orderNumber int) error
}

const sampleRate = 44100

// chimeNotes is the ascending three-tone signal played when an order
// needs attention.
var chimeNotes = []struct {
	freq     float64
	duration float64
}{
	{880, 0.15},
	{1100, 0.15},
	{1320, 0.3},
}

// ExecNotifier shells out to a PCM player and a text-to-speech command.
// Both commands come from config so terminals can use whatever the host
// has installed (aplay, say, espeak).
type ExecNotifier struct {
	playerCmd  []string
	speechCmd  []string
	speechText string
}

// NewExecNotifier builds a notifier from the display.audio config block.
func NewExecNotifier() *ExecNotifier {
	playerCmd := viper.GetStringSlice("display.audio.player_cmd")
	if len(playerCmd) == 0 {
		playerCmd = []string{"aplay", "-q", "-f", "S16_LE", "-r", "44100", "-c", "1"}
	}

	speechCmd := viper.GetStringSlice("display.audio.speech_cmd")
	if len(speechCmd) == 0 {
		speechCmd = []string{"espeak"}
	}

	speechText := viper.GetString("display.audio.speech_text")
	if speechText == "" {
		speechText = "Order number %d is ready"
	}

	return &ExecNotifier{
		playerCmd:  playerCmd,
		speechCmd:  speechCmd,
		speechText: speechText,
	}
}

// Chime synthesizes the three-tone signal and pipes it to the player.
func (n *ExecNotifier) Chime() error {
	var pcm bytes.Buffer
	for _, note := range chimeNotes {
		writeTone(&pcm, note.freq, note.duration)
	}

	cmd := exec.Command(n.playerCmd[0], n.playerCmd[1:]...)
	cmd.Stdin = &pcm
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to play chime: %w", err)
	}

	return nil
}

// AnnounceReady speaks the ready callout for an order number.
func (n *ExecNotifier) AnnounceReady(orderNumber int) error {
	text := fmt.Sprintf(n.speechText, orderNumber)

	args := append(append([]string{}, n.speechCmd[1:]...), text)
	if err := exec.Command(n.speechCmd[0], args...).Run(); err != nil {
		return fmt.Errorf("failed to announce order %d: %w", orderNumber, err)
	}

	return nil
}

// writeTone appends a 16-bit little-endian mono sine tone with a short
// linear fade to avoid clicks between notes.
func writeTone(buf *bytes.Buffer, freq, duration float64) {
	samples := int(sampleRate * duration)
	fade := sampleRate / 100

	for i := 0; i < samples; i++ {
		amplitude := 0.5
		if i < fade {
			amplitude *= float64(i) / float64(fade)
		}
		if samples-i < fade {
			amplitude *= float64(samples-i) / float64(fade)
		}

		value := amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		sample := int16(value * math.MaxInt16)

		_ = binary.Write(buf, binary.LittleEndian, sample)
	}
}

// NopNotifier is used when the terminal has sound disabled.
type NopNotifier struct{}

func (NopNotifier) Chime() error { return nil }

func (NopNotifier) AnnounceReady(int) error { return nil }
