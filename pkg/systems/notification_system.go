package systems

import (
	"log"

	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/ecs"
)

// MaxErrorNotifications 同时显示的错误消息上限，超出时移除最早的一条
const MaxErrorNotifications = 5

// NotificationSystem 屏幕提示系统
//
// 错误消息一直显示直到被点击；加载指示在加载期间显示。
type NotificationSystem struct {
	entityManager *ecs.EntityManager
	loadingEntity ecs.EntityID
	frame         uint64
}

// NewNotificationSystem 创建提示系统
func NewNotificationSystem(em *ecs.EntityManager) *NotificationSystem {
	return &NotificationSystem{entityManager: em}
}

// Update 推进帧号
func (s *NotificationSystem) Update() {
	s.frame++
}

// ShowError 显示一条可点击关闭的错误消息
func (s *NotificationSystem) ShowError(message string) ecs.EntityID {
	errs := s.Errors()
	for len(errs) >= MaxErrorNotifications {
		s.entityManager.DestroyEntity(errs[0])
		errs = errs[1:]
	}
	s.entityManager.RemoveMarkedEntities()

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.NotificationComponent{
		Kind:         components.NotificationError,
		Message:      message,
		CreatedFrame: s.frame,
	})
	log.Printf("[Notification] %s", message)
	return id
}

// SetLoading 显示或隐藏加载指示
func (s *NotificationSystem) SetLoading(loading bool) {
	if loading == s.IsLoading() {
		return
	}
	if loading {
		s.loadingEntity = s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, s.loadingEntity, &components.NotificationComponent{
			Kind:         components.NotificationLoading,
			Message:      "Loading...",
			CreatedFrame: s.frame,
		})
		return
	}
	s.entityManager.DestroyEntity(s.loadingEntity)
	s.entityManager.RemoveMarkedEntities()
	s.loadingEntity = 0
}

// IsLoading 加载指示是否可见
func (s *NotificationSystem) IsLoading() bool {
	return s.loadingEntity != 0 && s.entityManager.Exists(s.loadingEntity)
}

// Errors 返回所有错误消息实体（按创建顺序）
func (s *NotificationSystem) Errors() []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.NotificationComponent](s.entityManager) {
		n, _ := ecs.GetComponent[*components.NotificationComponent](s.entityManager, id)
		if n.Kind == components.NotificationError {
			result = append(result, id)
		}
	}
	return result
}

// Messages 返回所有错误消息文字（按创建顺序）
func (s *NotificationSystem) Messages() []string {
	var msgs []string
	for _, id := range s.Errors() {
		n, _ := ecs.GetComponent[*components.NotificationComponent](s.entityManager, id)
		msgs = append(msgs, n.Message)
	}
	return msgs
}

// Dismiss 关闭一条错误消息
func (s *NotificationSystem) Dismiss(id ecs.EntityID) {
	if !ecs.HasComponent[*components.NotificationComponent](s.entityManager, id) {
		return
	}
	s.entityManager.DestroyEntity(id)
	s.entityManager.RemoveMarkedEntities()
}

// DismissAll 关闭所有错误消息
func (s *NotificationSystem) DismissAll() {
	for _, id := range s.Errors() {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// HandleClick 点击命中某条错误消息时关闭它
// 消息矩形由渲染阶段回填；返回是否命中
func (s *NotificationSystem) HandleClick(x, y float64) bool {
	for _, id := range s.Errors() {
		n, _ := ecs.GetComponent[*components.NotificationComponent](s.entityManager, id)
		if n.Width <= 0 || n.Height <= 0 {
			continue
		}
		if x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height {
			s.Dismiss(id)
			return true
		}
	}
	return false
}
