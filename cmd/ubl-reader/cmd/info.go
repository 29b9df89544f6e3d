package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-reader/internal/container"
	"github.com/rezonia/ubl-reader/internal/processor"
	"github.com/rezonia/ubl-reader/internal/signature"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about invoice files",
	Long: `Display information about invoice files without printing the document.

Shows:
  - Sniffed content type and the container selected from the extension
  - Archive members for zip files
  - Which root was found (Invoice, CreditNote or AttachedDocument payload)
  - Whether the payload carries an XMLDSig signature
  - Signer certificate subject, when the document carries a signature

Examples:
  ubl-reader info fv08001972680002.zip
  ubl-reader info facturas/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	pipeline := newPipeline()
	out := cmd.OutOrStdout()
	for _, file := range files {
		printFileInfo(out, pipeline, file)
		fmt.Fprintln(out)
	}

	return nil
}

func printFileInfo(w io.Writer, pipeline *processor.Pipeline, filePath string) {
	fmt.Fprintf(w, "File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Fprintf(w, "  Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "  Size: %d bytes\n", info.Size())
	fmt.Fprintf(w, "  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(w, "  Error reading file: %v\n", err)
		return
	}

	fmt.Fprintf(w, "  Content: %s (%s)\n", processor.DetectFormat(data), processor.DetectMIME(data))
	fmt.Fprintf(w, "  Container: %s\n", containerName(container.Classify(filePath)))

	if container.Classify(filePath) == container.KindZip {
		if members, err := container.Members(data); err == nil {
			fmt.Fprintf(w, "  Members:\n")
			for _, m := range members {
				marker := " "
				if m.XML {
					marker = "*"
				}
				fmt.Fprintf(w, "   %s %s (%d bytes)\n", marker, m.Name, m.Size)
			}
		}
	}

	payload, err := pipeline.Resolve(data, filePath)
	if err != nil {
		fmt.Fprintf(w, "  Error: %v\n", err)
		return
	}
	signed := "no"
	if signature.Signed(payload.XML, payload.Root) {
		signed = "yes"
	}
	fmt.Fprintf(w, "  Signed: %s\n", signed)

	result, err := pipeline.Process(data, filePath)
	if err != nil {
		fmt.Fprintf(w, "  Error: %v\n", err)
		return
	}

	if result.Member != "" {
		fmt.Fprintf(w, "  Member: %s\n", result.Member)
	}
	fmt.Fprintf(w, "  Root: %s\n", result.Source)

	doc := result.Document
	fmt.Fprintf(w, "  Document: %s %s (%d lines)\n", doc.Kind, doc.ID.Text, len(doc.Lines))
	if doc.UUID.Text != "" {
		fmt.Fprintf(w, "  CUFE: %s\n", doc.UUID.Text)
	}
	if dian, ok := doc.DianExtensions(); ok {
		fmt.Fprintf(w, "  Authorization: %s (%s %d-%d)\n",
			dian.InvoiceControl.InvoiceAuthorization,
			dian.InvoiceControl.AuthorizedInvoices.Prefix,
			dian.InvoiceControl.AuthorizedInvoices.From,
			dian.InvoiceControl.AuthorizedInvoices.To)
	}

	sig, ok := doc.Signature()
	if !ok {
		fmt.Fprintf(w, "  Signature: none\n")
		return
	}
	fmt.Fprintf(w, "  Signed at: %s\n", sig.SigningTime)
	signer, err := signature.Signer(*sig)
	if err != nil {
		fmt.Fprintf(w, "  Signer: unreadable certificate (%v)\n", err)
		return
	}
	fmt.Fprintf(w, "  Signer: %s\n", signer.Name)
	if signer.Organization != "" {
		fmt.Fprintf(w, "  Organization: %s\n", signer.Organization)
	}
	fmt.Fprintf(w, "  Issuer: %s\n", signer.Issuer)
	fmt.Fprintf(w, "  Valid: %s to %s\n",
		signer.ValidFrom.Format("2006-01-02"), signer.ValidTo.Format("2006-01-02"))
}

func containerName(k container.Kind) string {
	switch k {
	case container.KindXML:
		return "XML"
	case container.KindZip:
		return "Zip archive"
	default:
		return "Unsupported"
	}
}
