// Package audio synthesizes the ambient drone and realm chimes.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"eightcircuits/pkg/game/config"
)

// minGain is the linear gain below which the drone is muted.
const minGain = 0.001

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	sr          beep.SampleRate
	mixer       *beep.Mixer
	drone       *beep.Ctrl
	droneVolume *effects.Volume
	level       float64
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	return &SoundManager{
		cfg:   cfg,
		sr:    beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		level: -1,
	}
}

// Initialize opens the speaker and starts the drone, muted until the first
// ambient level arrives.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sm.sr, sm.sr.N(time.Millisecond*100)); err != nil {
		return err
	}

	sm.drone = &beep.Ctrl{Streamer: NewDroneGenerator(sm.sr, sm.cfg.BaseFrequency)}
	sm.droneVolume = &effects.Volume{Streamer: sm.drone, Base: 2, Silent: true}
	sm.mixer.Add(sm.droneVolume)

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.drone.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// volumeFor converts a linear gain to the drone's base-2 volume.
func volumeFor(gain float64) (volume float64, silent bool) {
	if gain <= minGain {
		return 0, true
	}
	return math.Log2(gain), false
}

// SetAmbient sets the drone level, 0..1 of the configured maximum volume
func (sm *SoundManager) SetAmbient(level float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || level == sm.level {
		return
	}
	sm.level = level
	vol, silent := volumeFor(level * sm.cfg.MaxVolume)
	speaker.Lock()
	sm.droneVolume.Volume = vol
	sm.droneVolume.Silent = silent
	speaker.Unlock()
}

// SetPaused holds the drone while the session is paused
func (sm *SoundManager) SetPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.drone.Paused = paused
	speaker.Unlock()
}

// RealmEntered plays the chime of realm id
func (sm *SoundManager) RealmEntered(id int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	chime := &effects.Volume{
		Streamer: NewChimeGenerator(sm.sr, ChimeFrequency(sm.cfg.BaseFrequency, id)),
		Base:     2,
		Volume:   math.Log2(math.Max(sm.cfg.MaxVolume, minGain)),
	}
	speaker.Lock()
	sm.mixer.Add(chime)
	speaker.Unlock()
}
