package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xiebiao/posbuzz/internal/domain/user"
	"github.com/xiebiao/posbuzz/internal/infrastructure/config"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/posbuzz/pkg/logger"
)

// serviceFactory 打开用户服务，返回的close释放数据库连接
type serviceFactory func(v *viper.Viper) (svc user.Service, close func(), err error)

// demoAccount 演示账号
type demoAccount struct {
	Email    string
	Password string
	Name     string
	Role     user.Role
}

var demoAccounts = []demoAccount{
	{Email: "admin@posbuzz.local", Password: "Admin1234", Name: "Admin User", Role: user.RoleAdmin},
	{Email: "cashier@posbuzz.local", Password: "Cashier1234", Name: "Demo Cashier", Role: user.RoleCashier},
}

// newRootCmd 构建命令树（测试时注入内存实现的用户服务）
func newRootCmd(open serviceFactory) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("POSBUZZ_ADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "posbuzz-admin",
		Short:         "PosBuzz账号运维工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config-dir", "./config", "配置文件目录（包含config.yaml）")
	_ = v.BindPFlag("config-dir", root.PersistentFlags().Lookup("config-dir"))

	root.AddCommand(
		newCreateAdminCmd(v, open),
		newPromoteCmd(v, open),
		newSeedDemoCmd(v, open),
	)
	return root
}

func newCreateAdminCmd(v *viper.Viper, open serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "创建管理员账号（邮箱已存在时重置密码并设为管理员）",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd, "email", "password", "name")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := requireValue(v, "email")
			if err != nil {
				return err
			}
			password, err := requireValue(v, "password")
			if err != nil {
				return err
			}

			svc, closeFn, err := open(v)
			if err != nil {
				return err
			}
			defer closeFn()

			u, err := svc.Provision(cmd.Context(), email, password, v.GetString("name"), user.RoleAdmin)
			if err != nil {
				return fmt.Errorf("创建管理员失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "管理员已就绪: %s (id=%d)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().String("email", "", "邮箱（环境变量POSBUZZ_ADMIN_EMAIL）")
	cmd.Flags().String("password", "", "密码，8-20位，包含字母和数字（环境变量POSBUZZ_ADMIN_PASSWORD）")
	cmd.Flags().String("name", "Administrator", "显示名称")
	return cmd
}

func newPromoteCmd(v *viper.Viper, open serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "修改已有账号的角色（默认提升为管理员）",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd, "email", "role")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := requireValue(v, "email")
			if err != nil {
				return err
			}
			role := v.GetString("role")
			target := user.Role(strings.ToUpper(role))
			if !target.IsValid() {
				return fmt.Errorf("未知角色: %s", role)
			}

			svc, closeFn, err := open(v)
			if err != nil {
				return err
			}
			defer closeFn()

			u, err := svc.ChangeRole(cmd.Context(), email, target)
			if err != nil {
				return fmt.Errorf("修改角色失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s 的角色已更新为 %s\n", u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "邮箱（环境变量POSBUZZ_ADMIN_EMAIL）")
	cmd.Flags().String("role", string(user.RoleAdmin), "目标角色：ADMIN | CASHIER")
	return cmd
}

// bindFlags 执行时才绑定，子命令之间的同名flag互不覆盖
// 优先级：命令行flag > POSBUZZ_ADMIN_*环境变量 > flag默认值
func bindFlags(v *viper.Viper, cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func requireValue(v *viper.Viper, key string) (string, error) {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return "", fmt.Errorf("缺少--%s（或环境变量POSBUZZ_ADMIN_%s）", key, strings.ToUpper(key))
	}
	return value, nil
}

func newSeedDemoCmd(v *viper.Viper, open serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "创建（或重置）演示用的管理员和收银员账号",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := open(v)
			if err != nil {
				return err
			}
			defer closeFn()

			for _, a := range demoAccounts {
				u, err := svc.Provision(cmd.Context(), a.Email, a.Password, a.Name, a.Role)
				if err != nil {
					return fmt.Errorf("初始化%s失败: %w", a.Email, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s / %s\n", u.Role, u.Email, a.Password)
			}
			return nil
		},
	}
}

// openUserService 按配置连接数据库
func openUserService(v *viper.Viper) (user.Service, func(), error) {
	cfg, err := config.LoadFrom(v.GetString("config-dir"))
	if err != nil {
		return nil, nil, err
	}

	zlog, err := logger.New(logger.Options{Level: "warn", Format: "console", Output: "stderr"})
	if err != nil {
		return nil, nil, err
	}

	db, err := mysql.NewDB(cfg, zlog)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = zlog.Sync()
	}
	return user.NewService(mysql.NewUserRepository(db)), closeFn, nil
}
