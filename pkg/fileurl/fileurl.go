// Package fileurl 文件路径辅助函数
package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist checks whether path exists
// IsExist 检查路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建目标文件所在目录
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	return os.MkdirAll(dir, perm)
}
