package main

import (
	"log"
	"sync"
	"time"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/internal/synth"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundPlayer 终端版音效播放
// 所有音效混入同一个 beep.Mixer，由 speaker 持续播放
type SoundPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundPlayer 创建音效播放器
func NewSoundPlayer(volume float64) *SoundPlayer {
	return &SoundPlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize 打开音频设备
// 失败不影响运行，只是没有声音
func (sp *SoundPlayer) Initialize() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}
	if err := speaker.Init(synth.SampleRate, synth.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(sp.mixer)
	sp.initialized = true
	return nil
}

// OnEffect 特效生成时播放对应音效
func (sp *SoundPlayer) OnEffect(kind interaction.EffectKind) {
	if s, ok := synth.ForEffect(kind); ok {
		sp.Play(s)
	}
}

// Play 播放音效，设备未打开时返回 false
func (sp *SoundPlayer) Play(s synth.Sound) bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return false
	}
	streamer := synth.Create(s, sp.volume, synth.SampleRate)
	if streamer == nil {
		log.Printf("[Sound] 未知音效: %v", s)
		return false
	}
	speaker.Lock()
	sp.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// Close 停止播放并关闭设备
func (sp *SoundPlayer) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}
	speaker.Lock()
	sp.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sp.initialized = false
}
