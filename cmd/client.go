package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/listkeep/list-note-service/pkg/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type clientFlags struct {
	server   string // API 地址
	email    string // 登录邮箱
	password string // 登录密码
	token    string // 已有令牌，设置后跳过登录
}

func init() {
	clientEnv := new(clientFlags)

	var clientCommand = &cobra.Command{
		Use:   "client [-s server] [-e email] [-w password]",
		Short: "List notes via the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			var opts []client.Option
			if clientEnv.token != "" {
				opts = append(opts, client.WithToken(clientEnv.token))
			}
			c := client.New(clientEnv.server, opts...)

			if clientEnv.token == "" {
				if clientEnv.email == "" || clientEnv.password == "" {
					bootstrapLogger.Error("either --token or --email and --password are required")
					return
				}
				if _, err := c.Login(ctx, clientEnv.email, clientEnv.password); err != nil {
					bootstrapLogger.Error("login failed", zap.Error(err))
					return
				}
			}

			notes, err := c.Notes(ctx)
			if err != nil {
				bootstrapLogger.Error("list notes failed", zap.Error(err))
				return
			}

			if len(notes) == 0 {
				fmt.Println("no notes")
				return
			}

			for _, note := range notes {
				fmt.Printf("#%d [%s] %s (updated %s)\n", note.ID, note.Type, note.Title, note.UpdatedAt)
				for _, item := range note.Content {
					if item.IsMarked() {
						fmt.Printf("  [x] %s\n", item.Text())
					} else if note.Type == "checklist" {
						fmt.Printf("  [ ] %s\n", item.Text())
					} else {
						fmt.Printf("  - %s\n", item.Text())
					}
				}
			}
		},
	}

	rootCmd.AddCommand(clientCommand)
	fs := clientCommand.Flags()
	fs.StringVarP(&clientEnv.server, "server", "s", "http://127.0.0.1:9000", "api server address")
	fs.StringVarP(&clientEnv.email, "email", "e", "", "login email")
	fs.StringVarP(&clientEnv.password, "password", "w", "", "login password")
	fs.StringVarP(&clientEnv.token, "token", "t", "", "auth token (skips login)")
}
