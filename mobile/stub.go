//go:build !mobile

// Package mobile 的普通构建占位，实际入口见 mobile.go（-tags mobile）
package mobile

// Dummy 空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
