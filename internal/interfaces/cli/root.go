package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// EnvServer 默认服务端地址的环境变量
const EnvServer = "PUSHCTL_SERVER"

const defaultServer = "http://localhost:3000"

type rootOptions struct {
	server  string
	timeout time.Duration
}

func (o *rootOptions) client() *APIClient {
	return NewAPIClient(o.server, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pushctl",
		Short:         "Operate a running chat app push relay",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv(EnvServer)
	if server == "" {
		server = defaultServer
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "push relay base URL (env "+EnvServer+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	cmd.AddCommand(newSendCmd(opts))
	cmd.AddCommand(newDeliveriesCmd(opts))
	cmd.AddCommand(newHealthCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute 运行 pushctl
func Execute() error {
	return newRootCmd().Execute()
}
