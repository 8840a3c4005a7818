//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口
//
// 桌面构建只编译本文件，让 go build ./... 不因构建标签排除全部文件而失败。
// 绑定命令：
//
//	cp -r data mobile/
//	ebitenmobile bind -tags mobile -target android -javapkg com.gonewx.dogpet ./mobile
package mobile
