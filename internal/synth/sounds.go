package synth

import (
	"time"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gopxl/beep"
)

// SampleRate 默认采样率，与 ebiten 音频上下文一致
const SampleRate = beep.SampleRate(48000)

// Sound 音效类型
type Sound int

const (
	// SoundFeed 喂食：上行两音
	SoundFeed Sound = iota
	// SoundFull 进度满：铃声
	SoundFull
	// SoundPet 开始抚摸：短促的柔和提示音
	SoundPet
)

// String 返回音效名称
func (s Sound) String() string {
	switch s {
	case SoundFeed:
		return "feed"
	case SoundFull:
		return "full"
	case SoundPet:
		return "pet"
	default:
		return "unknown"
	}
}

// ForEffect 特效对应的音效
// 只有喂食、进入满格和开始抚摸有声音
func ForEffect(kind interaction.EffectKind) (Sound, bool) {
	switch kind {
	case interaction.EffectFoodBurst:
		return SoundFeed, true
	case interaction.EffectSparkle:
		return SoundFull, true
	case interaction.EffectPetBurst:
		return SoundPet, true
	default:
		return 0, false
	}
}

// 音效时长参数
const (
	feedNoteDuration = 90 * time.Millisecond
	feedAttack       = 5 * time.Millisecond
	feedRelease      = 60 * time.Millisecond

	bellDuration        = 600 * time.Millisecond
	bellAttack          = 4 * time.Millisecond
	bellFundamentalTail = 560 * time.Millisecond
	bellOvertoneTail    = 300 * time.Millisecond

	petDuration = 70 * time.Millisecond
	petAttack   = 10 * time.Millisecond
	petRelease  = 50 * time.Millisecond
)

// Create 按类型创建音效流
//
// 参数：
//   - s: 音效类型
//   - volume: 线性音量 0.0 ~ 1.0
//   - rate: 采样率
//
// 返回：未知类型返回 nil
func Create(s Sound, volume float64, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundFeed:
		return createFeed(volume, rate)
	case SoundFull:
		return createBell(volume, rate)
	case SoundPet:
		return createPet(volume, rate)
	default:
		return nil
	}
}

// createFeed E5 → A5 两音
func createFeed(volume float64, rate beep.SampleRate) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(659.25, feedNoteDuration, WaveTriangle, rate), feedNoteDuration, feedAttack, feedRelease, rate)
	n2 := NewEnvelope(NewOscillator(880.0, feedNoteDuration, WaveTriangle, rate), feedNoteDuration, feedAttack, feedRelease, rate)
	return newVolume(beep.Seq(n1, n2), volume)
}

// createBell 基音 A5 + 八度泛音
func createBell(volume float64, rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(880.0, bellDuration, WaveSine, rate), bellDuration, bellAttack, bellFundamentalTail, rate)
	over := NewEnvelope(NewOscillator(1760.0, bellDuration, WaveSine, rate), bellDuration, bellAttack, bellOvertoneTail, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, volume)
}

func createPet(volume float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(523.25, petDuration, WaveSine, rate)
	return newVolume(NewEnvelope(osc, petDuration, petAttack, petRelease, rate), volume*0.5)
}
