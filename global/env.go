package global

import (
	"github.com/listkeep/list-note-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "List Note Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}

// Version 全局版本号，由 internal/app 在启动时写入
var Version string
