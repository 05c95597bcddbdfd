package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flemzord/tgdispatch/modules/node/telegram"
	"github.com/flemzord/tgdispatch/pkg/imaging"
)

// dispatchFlags are the connection options shared by the one-shot commands.
type dispatchFlags struct {
	token        string
	apiURL       string
	timeout      time.Duration
	pollInterval time.Duration
	maxPolls     int
}

func (f *dispatchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.token, "token", "", "Bot token (defaults to $TELEGRAM_BOT_TOKEN)")
	cmd.Flags().StringVar(&f.apiURL, "api-url", "https://api.telegram.org", "Telegram API base URL")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 60*time.Second, "Request timeout")
	cmd.Flags().DurationVar(&f.pollInterval, "poll-interval", time.Second, "Delay between reply-resolution polls")
	cmd.Flags().IntVar(&f.maxPolls, "max-polls", 30, "Reply-resolution poll budget")
}

func (f *dispatchFlags) dispatcher() (*telegram.Dispatcher, error) {
	token := f.token
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no bot token (use --token or $TELEGRAM_BOT_TOKEN)")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := telegram.NewClient(token, f.apiURL, f.timeout)
	policy := telegram.Policy{PollInterval: f.pollInterval, MaxPolls: f.maxPolls}
	return telegram.NewDispatcher(client, policy, logger), nil
}

// loadImages decodes the given PNG or JPEG files.
func loadImages(paths []string) ([]imaging.Image, error) {
	var images []imaging.Image
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		raw, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		img, err := imaging.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func sendCmd() *cobra.Command {
	var flags dispatchFlags
	var caption string
	var asDocument bool

	cmd := &cobra.Command{
		Use:   "send --chat <id> <image>...",
		Short: "Post images to a channel as one media group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, _ := cmd.Flags().GetString("chat")
			if chat == "" {
				return fmt.Errorf("--chat is required")
			}

			d, err := flags.dispatcher()
			if err != nil {
				return err
			}
			images, err := loadImages(args)
			if err != nil {
				return err
			}

			id, err := d.Send(cmd.Context(), chat, images, caption, asDocument)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().String("chat", "", "Channel id or @username")
	cmd.Flags().StringVar(&caption, "caption", "", "Caption for the first image (HTML)")
	cmd.Flags().BoolVar(&asDocument, "as-document", false, "Send as uncompressed documents")
	return cmd
}

func replyCmd() *cobra.Command {
	var flags dispatchFlags
	var text string
	var asDocument bool
	var replyTo, marker int

	cmd := &cobra.Command{
		Use:   "reply --chat <id> [image]...",
		Short: "Reply to a message with images or text",
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, _ := cmd.Flags().GetString("chat")
			if chat == "" {
				return fmt.Errorf("--chat is required")
			}

			d, err := flags.dispatcher()
			if err != nil {
				return err
			}
			images, err := loadImages(args)
			if err != nil {
				return err
			}

			target := telegram.ReplyTarget{MessageID: replyTo, Marker: marker}
			res, err := d.Reply(cmd.Context(), chat, target, images, text, asDocument)
			if err != nil {
				return err
			}
			fmt.Printf("reply_to=%d message_id=%d\n", res.Target, res.MessageID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().String("chat", "", "Chat id")
	cmd.Flags().IntVar(&replyTo, "reply-to", 0, "Target message id (skips resolution)")
	cmd.Flags().IntVar(&marker, "marker", 0, "Forwarded-message marker to resolve")
	cmd.Flags().StringVar(&text, "text", "", "Text body when no images are given (HTML)")
	cmd.Flags().BoolVar(&asDocument, "as-document", false, "Send as uncompressed documents")
	return cmd
}
