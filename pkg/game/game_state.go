package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "dogpet"

// GameState 存储跨场景共享的服务
// 宠物的进度和快乐值属于交互状态机，不放在这里
type GameState struct {
	settingsManager *SettingsManager
	audioManager    *AudioManager
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 首次调用时打开 gdata 存储，失败时进入降级模式（设置仅保存在内存）
func GetGameState() *GameState {
	if globalGameState == nil {
		gm, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable: %v (settings will not persist)", err)
			gm = nil
		}
		globalGameState = NewGameState(gm)
	}
	return globalGameState
}

// NewGameState 创建独立的 GameState
//
// 参数：
//   - gm: gdata 管理器，可为 nil（降级模式）
func NewGameState(gm *gdata.Manager) *GameState {
	return &GameState{
		settingsManager: NewSettingsManager(gm),
	}
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// SetAudioManager 设置音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，未初始化时为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}
