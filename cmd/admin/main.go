// Command posbuzz-admin 账号运维工具：创建管理员、提升角色、初始化演示账号
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(openUserService).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
