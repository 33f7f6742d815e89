package main

import (
	"errors"

	"github.com/spf13/cobra"

	telegram "fiber-inspector/internal/api"
)

func newBotCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot for operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger, err := global.setup(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			if c.Config.Telegram.Token == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}

			bot, err := telegram.NewBot(c.Config.Telegram.Token, c, logger)
			if err != nil {
				return err
			}

			logger.Info("bot is running")
			return bot.Run(cmd.Context())
		},
	}
}
