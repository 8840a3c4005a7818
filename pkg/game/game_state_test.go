package game

import "testing"

// TestNewGameStateDegraded 测试无 gdata 时的降级模式
func TestNewGameStateDegraded(t *testing.T) {
	gs := NewGameState(nil)

	sm := gs.GetSettingsManager()
	if sm == nil {
		t.Fatal("GetSettingsManager() returned nil")
	}
	if sm.IsPersistent() {
		t.Error("无 gdata 时不应可持久化")
	}
	if gs.GetAudioManager() != nil {
		t.Error("AudioManager 初始应为 nil")
	}
}

// TestNewGameStatePersistent 测试 gdata 可用时设置可持久化
func TestNewGameStatePersistent(t *testing.T) {
	gs := NewGameState(openTestGdata(t, "dogpet_test_state"))
	if !gs.GetSettingsManager().IsPersistent() {
		t.Error("gdata 可用时应可持久化")
	}
}
