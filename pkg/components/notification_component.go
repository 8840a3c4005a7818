package components

// NotificationKind 提示类型
type NotificationKind int

const (
	// NotificationError 错误消息，左上角显示，点击后消失
	NotificationError NotificationKind = iota
	// NotificationLoading 加载指示，居中显示，加载结束时移除
	NotificationLoading
)

// NotificationComponent 屏幕提示
type NotificationComponent struct {
	Kind    NotificationKind
	Message string
	// CreatedFrame 创建时的帧号，用于排序（新消息在下方）
	CreatedFrame uint64
	// 屏幕矩形，由渲染阶段布局后回填，用于点击命中
	X, Y, Width, Height float64
}
