package cli

import (
	"fmt"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/spf13/cobra"
)

func newSendCmd(opts *rootOptions) *cobra.Command {
	dto := &appNotification.SendNotificationDTO{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a push notification to one device token",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.client().Send(dto)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&dto.Token, "token", "", "device token")
	cmd.Flags().StringVar(&dto.Title, "title", "", "notification title")
	cmd.Flags().StringVar(&dto.Body, "body", "", "notification body")
	return cmd
}
