package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhoelle/botwire"
)

var (
	sendChat     string
	sendText     string
	sendDocument string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message or a document to a chat",
	Example: `  # Send a text message
  botwire send --chat 42 --text "hi"

  # Send a file to a channel
  botwire send --chat @mychannel --document ./report.txt --text "monthly report"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		chat, err := parseChat(sendChat)
		if err != nil {
			return err
		}

		if sendDocument != "" {
			f, err := os.Open(sendDocument)
			if err != nil {
				return fmt.Errorf("failed to open document: %w", err)
			}
			defer f.Close()
			upload := botwire.FileUpload{Name: filepath.Base(sendDocument), Content: f}
			msg, err := c.SendDocument(cmd.Context(), chat, upload, sendText)
			if err != nil {
				return err
			}
			color.Green("✓ sent document, message_id %d", msg.MessageID)
			return nil
		}

		if sendText == "" {
			return fmt.Errorf("nothing to send: use --text or --document")
		}
		msg, err := c.SendMessage(cmd.Context(), chat, sendText, nil)
		if err != nil {
			return err
		}
		color.Green("✓ sent, message_id %d", msg.MessageID)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendChat, "chat", "", "target chat: numeric ID or @username")
	sendCmd.Flags().StringVar(&sendText, "text", "", "message text (caption when sending a document)")
	sendCmd.Flags().StringVar(&sendDocument, "document", "", "path of a file to upload")
	rootCmd.AddCommand(sendCmd)
}
