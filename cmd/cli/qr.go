package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/qrcode"
)

var (
	qrOutput string
	qrSize   int
)

var qrCmd = &cobra.Command{
	Use:   "qr <code>",
	Short: "Print the QR image URL of a link, or save the image with --out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if qrOutput == "" {
			rec, err := service.GetLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(qr.ImageURL(rec.OriginalURL, qrSize))
			return nil
		}

		img, _, err := service.QRCode(cmd.Context(), args[0], qrSize)
		if err != nil {
			return err
		}
		if err := os.WriteFile(qrOutput, img, 0o644); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", qrOutput)
		return nil
	},
}

func init() {
	qrCmd.Flags().StringVarP(&qrOutput, "out", "o", "", "save the PNG to this file")
	qrCmd.Flags().IntVarP(&qrSize, "size", "s", qrcode.DownloadSize, "image size in pixels")
	rootCmd.AddCommand(qrCmd)
}
