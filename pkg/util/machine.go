package util

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID      string
	machineIDMutex sync.Mutex
)

// GetMachineID 获取当前机器的唯一标识符
// 优先使用 machineid 库，失败则尝试获取主板序列号
// 返回值: 机器ID字符串，如果全部获取失败则返回空字符串
func GetMachineID() string {
	machineIDMutex.Lock()
	defer machineIDMutex.Unlock()

	if machineID != "" {
		return machineID
	}

	id, err := machineid.ID()
	if err == nil && id != "" {
		machineID = id
		return machineID
	}

	id, err = getMotherboardID()
	if err == nil && id != "" {
		machineID = id
		return machineID
	}

	// 全部失败，返回空字符串，调用者自行判断
	return ""
}

func getMotherboardID() (string, error) {
	switch runtime.GOOS {
	case "windows":
		out, err := exec.Command("wmic", "baseboard", "get", "serialnumber").Output()
		if err != nil {
			return "", err
		}
		return parseSerialNumber(string(out)), nil
	case "linux":
		content, err := os.ReadFile("/sys/class/dmi/id/board_serial")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(content)), nil
	default:
		return "", errors.New("unsupported os")
	}
}

func parseSerialNumber(output string) string {
	lines := strings.Split(output, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "SerialNumber") {
			continue
		}
		return line
	}
	return ""
}
