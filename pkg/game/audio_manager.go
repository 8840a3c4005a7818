package game

import (
	"log"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/internal/synth"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存交互音效（喂食、满格、抚摸）
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 把特效事件映射为音效
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager              // 设置管理器（用于读取音量设置，可为 nil）
	soundPlayers    map[synth.Sound]*audio.Player // 音效播放器缓存
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，为 nil 时复用当前上下文或按 synth.SampleRate 新建
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	if ctx == nil {
		ctx = audio.CurrentContext()
	}
	if ctx == nil {
		ctx = audio.NewContext(int(synth.SampleRate))
	}
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[synth.Sound]*audio.Player),
	}
}

// OnEffect 特效生成回调，播放对应音效
func (am *AudioManager) OnEffect(kind interaction.EffectKind) {
	if s, ok := synth.ForEffect(kind); ok {
		am.PlaySound(s)
	}
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(s synth.Sound) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(s)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", s, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(clampVolume(volume))
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// PreloadSounds 预先合成所有音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() {
	sounds := []synth.Sound{synth.SoundFeed, synth.SoundFull, synth.SoundPet}
	for _, s := range sounds {
		am.getSoundPlayer(s)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(sounds))
}

// getSoundPlayer 获取或合成音效播放器
// 音效按满音量合成，播放时再由 SetVolume 调整
func (am *AudioManager) getSoundPlayer(s synth.Sound) *audio.Player {
	if player, exists := am.soundPlayers[s]; exists {
		return player
	}

	pcm := synth.RenderPCM16(synth.Create(s, 1.0, beepRate(am.context)))
	if len(pcm) == 0 {
		log.Printf("[AudioManager] Warning: Sound not found: %s", s)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[s] = player
	return player
}

func beepRate(ctx *audio.Context) beep.SampleRate {
	return beep.SampleRate(ctx.SampleRate())
}
