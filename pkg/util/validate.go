package util

import "regexp"

var (
	emailRegexp    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
)

// IsValidEmail 判断是否为合法邮箱格式
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// IsValidUsername 判断是否为合法用户名
// 用户名会作为公开主页路径，限制为字母数字下划线
func IsValidUsername(username string) bool {
	return usernameRegexp.MatchString(username)
}
