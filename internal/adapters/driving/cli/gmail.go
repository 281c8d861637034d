package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

var (
	gmailTo          []string
	gmailCc          []string
	gmailBcc         []string
	gmailSubject     string
	gmailBody        string
	gmailHTMLBody    string
	gmailAttachments []string
	gmailAttachURLs  []string
	gmailThreadID    string
	gmailMaxResults  int64
)

var gmailCmd = &cobra.Command{
	Use:   "gmail",
	Short: "Mailbox draft operations",
}

var gmailDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage drafts",
}

var gmailDraftCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Compose and store a draft",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		draft, err := svc.CreateDraft(cmd.Context(), envelopeFromFlags())
		if err != nil {
			return err
		}
		cmd.Println(draft.ID)
		return nil
	},
}

var gmailDraftUpdateCmd = &cobra.Command{
	Use:   "update <draft-id>",
	Short: "Replace the content of a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		draft, err := svc.UpdateDraft(cmd.Context(), args[0], envelopeFromFlags())
		if err != nil {
			return err
		}
		cmd.Println(draft.ID)
		return nil
	},
}

var gmailDraftGetCmd = &cobra.Command{
	Use:   "get <draft-id>",
	Short: "Show a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		draft, err := svc.GetDraft(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, draft)
	},
}

var gmailDraftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		drafts, err := svc.ListDrafts(cmd.Context(), gmailMaxResults)
		if err != nil {
			return err
		}
		return printJSON(cmd, drafts)
	},
}

var gmailDraftDeleteCmd = &cobra.Command{
	Use:   "delete <draft-id>",
	Short: "Delete a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		if err := svc.DeleteDraft(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Println("Deleted")
		return nil
	},
}

var gmailDraftSendCmd = &cobra.Command{
	Use:   "send <draft-id>",
	Short: "Send a stored draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		msgID, err := svc.SendDraft(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Println(msgID)
		return nil
	},
}

var gmailSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Compose and send a message",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newMessaging(cmd.Context())
		if err != nil {
			return err
		}
		msgID, err := svc.Send(cmd.Context(), envelopeFromFlags())
		if err != nil {
			return err
		}
		cmd.Println(msgID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{gmailDraftCreateCmd, gmailDraftUpdateCmd, gmailSendCmd} {
		c.Flags().StringSliceVar(&gmailTo, "to", nil, "recipient addresses")
		c.Flags().StringSliceVar(&gmailCc, "cc", nil, "cc recipients")
		c.Flags().StringSliceVar(&gmailBcc, "bcc", nil, "bcc recipients")
		c.Flags().StringVar(&gmailSubject, "subject", "", "message subject")
		c.Flags().StringVar(&gmailBody, "body", "", "plain text body")
		c.Flags().StringVar(&gmailHTMLBody, "html-body", "", "HTML body")
		c.Flags().StringSliceVar(&gmailAttachments, "attach", nil, "local files to attach")
		c.Flags().StringSliceVar(&gmailAttachURLs, "attach-url", nil, "remote resources to fetch and attach")
		c.Flags().StringVar(&gmailThreadID, "thread", "", "existing thread ID")
	}
	gmailDraftListCmd.Flags().Int64Var(&gmailMaxResults, "max", 20, "maximum number of drafts to list")

	gmailDraftCmd.AddCommand(gmailDraftCreateCmd)
	gmailDraftCmd.AddCommand(gmailDraftUpdateCmd)
	gmailDraftCmd.AddCommand(gmailDraftGetCmd)
	gmailDraftCmd.AddCommand(gmailDraftListCmd)
	gmailDraftCmd.AddCommand(gmailDraftDeleteCmd)
	gmailDraftCmd.AddCommand(gmailDraftSendCmd)
	gmailCmd.AddCommand(gmailDraftCmd)
	gmailCmd.AddCommand(gmailSendCmd)
	rootCmd.AddCommand(gmailCmd)
}

func envelopeFromFlags() domain.Envelope {
	env := domain.Envelope{
		To:          gmailTo,
		Cc:          gmailCc,
		Bcc:         gmailBcc,
		Subject:     gmailSubject,
		Body:        gmailBody,
		HTMLBody:    gmailHTMLBody,
		Attachments: gmailAttachments,
		ThreadID:    gmailThreadID,
	}
	for _, u := range gmailAttachURLs {
		env.AttachmentURLs = append(env.AttachmentURLs, domain.URLAttachment{URL: u})
	}
	return env
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
