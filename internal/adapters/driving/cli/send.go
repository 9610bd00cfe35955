package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-connect/internal/connectors/google/gmail"
	"github.com/custodia-labs/sercha-connect/internal/connectors/stripe"
	"github.com/custodia-labs/sercha-connect/internal/connectors/twilio"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send messages through a connector",
}

var sendEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send a plain text email",
	Long: `Send a plain text email through an email connector.

Example:
  sercha-connect send email --to alice@example.com --subject "Hi" --body "Hello"`,
	Args: cobra.NoArgs,
	RunE: runSendEmail,
}

var sendWhatsAppCmd = &cobra.Command{
	Use:   "whatsapp",
	Short: "Send a WhatsApp message",
	Long: `Send a WhatsApp message. The whatsapp: prefix is added to the
recipient when missing.

Example:
  sercha-connect send whatsapp --to +15551234567 --body "Your order shipped"`,
	Args: cobra.NoArgs,
	RunE: runSendWhatsApp,
}

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Open a billing portal session for a customer",
	Args:  cobra.NoArgs,
	RunE:  runPortal,
}

// Flags for send and portal.
var (
	emailConnector    string
	whatsAppConnector string
	sendTo            string
	sendSubject       string
	sendBody          string

	portalConnector string
	portalCustomer  string
	portalReturnURL string
)

func init() {
	sendEmailCmd.Flags().StringVar(&emailConnector, "connector", gmail.ID, "Email connector id")
	sendEmailCmd.Flags().StringVar(&sendTo, "to", "", "Recipient address")
	sendEmailCmd.Flags().StringVar(&sendSubject, "subject", "", "Subject line")
	sendEmailCmd.Flags().StringVar(&sendBody, "body", "", "Plain text body")
	_ = sendEmailCmd.MarkFlagRequired("to")

	sendWhatsAppCmd.Flags().StringVar(&whatsAppConnector, "connector", twilio.ID, "WhatsApp connector id")
	sendWhatsAppCmd.Flags().StringVar(&sendTo, "to", "", "Recipient phone number")
	sendWhatsAppCmd.Flags().StringVar(&sendBody, "body", "", "Message text")
	_ = sendWhatsAppCmd.MarkFlagRequired("to")

	portalCmd.Flags().StringVar(&portalConnector, "connector", stripe.ID, "Billing connector id")
	portalCmd.Flags().StringVar(&portalCustomer, "customer", "", "Provider customer id")
	portalCmd.Flags().StringVar(&portalReturnURL, "return-url", "", "URL the portal returns to")
	_ = portalCmd.MarkFlagRequired("customer")

	sendCmd.AddCommand(sendEmailCmd)
	sendCmd.AddCommand(sendWhatsAppCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(portalCmd)
}

func runSendEmail(cmd *cobra.Command, _ []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}
	sent, err := gw.SendEmail(cmd.Context(), emailConnector, sendTo, sendSubject, sendBody)
	if err != nil {
		return err
	}
	return printJSON(cmd, sent)
}

func runSendWhatsApp(cmd *cobra.Command, _ []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}
	sent, err := gw.SendWhatsApp(cmd.Context(), whatsAppConnector, sendTo, sendBody)
	if err != nil {
		return err
	}
	return printJSON(cmd, sent)
}

func runPortal(cmd *cobra.Command, _ []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}
	session, err := gw.CreatePortalSession(cmd.Context(), portalConnector, portalCustomer, portalReturnURL)
	if err != nil {
		return err
	}
	return printJSON(cmd, session)
}
