package cli

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aidconnect/internal/certificate"
)

func newVerifyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <payload-or-code-url>",
		Short: "Decode a verification payload or the code image URL that carries it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := payloadArg(args[0])
			if err != nil {
				return err
			}
			p, err := certificate.ParsePayload(raw)
			if err != nil {
				return err
			}
			return yaml.NewEncoder(opts.out).Encode(map[string]any{
				"id":     p.ID,
				"amount": p.Amount,
				"ngo":    p.NGO,
				"date":   p.Date,
				"donor":  p.Donor,
				"hash":   certificate.ShortHash(p.ID),
			})
		},
	}
}

// payloadArg accepts raw JSON or a URL whose data query parameter holds it.
func payloadArg(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "{") {
		return arg, nil
	}
	u, err := url.Parse(arg)
	if err != nil {
		return "", err
	}
	data := u.Query().Get("data")
	if data == "" {
		return "", errors.New("no data parameter in url")
	}
	return data, nil
}
