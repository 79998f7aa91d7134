package commands

import (
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/my0373/nbcli/internal/output"
	"github.com/my0373/nbcli/pkg/nbclient"
	"github.com/my0373/nbcli/pkg/netbox"
)

// Session is the validated connection and presentation state for one command
// invocation, resolved from flags, environment, and config file via viper.
type Session struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	Insecure     bool
	Format       output.Format
	ColorEnabled bool
}

// CurrentSession resolves and validates the active session settings.
func CurrentSession() (*Session, error) {
	baseURL := viper.GetString("url")
	if baseURL == "" {
		return nil, netbox.ErrMissingURL
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, netbox.ErrMissingToken
	}

	format, err := output.ParseFormat(viper.GetString("output"))
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(viper.GetFloat64("timeout") * float64(time.Second))

	return &Session{
		BaseURL:      baseURL,
		Token:        token,
		Timeout:      timeout,
		Insecure:     viper.GetBool("insecure"),
		Format:       format,
		ColorEnabled: colorEnabled(format),
	}, nil
}

// colorEnabled reports whether pretty output should be colorized: only when
// no machine format was requested, stdout is an interactive terminal, and
// color was not disabled explicitly.
func colorEnabled(format output.Format) bool {
	if format.Machine() || viper.GetBool("no-color") {
		return false
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Client creates a catalog client from the session settings.
func (s *Session) Client() (*nbclient.Client, error) {
	return nbclient.New(&nbclient.Config{
		BaseURL:       s.BaseURL,
		Token:         s.Token,
		Timeout:       s.Timeout,
		SkipTLSVerify: s.Insecure,
	})
}

// Renderer creates an output renderer from the session settings.
func (s *Session) Renderer() *output.Renderer {
	return output.NewRenderer(s.Format, s.ColorEnabled)
}

// RenderSelected applies an optional dotted-path selector to the payload and
// renders the result to stdout.
func (s *Session) RenderSelected(payload any, selector string) error {
	selected, err := netbox.Select(payload, selector)
	if err != nil {
		return err
	}

	return s.Renderer().Render(os.Stdout, selected)
}

// ConfigPayload describes the active connection settings as a payload for
// the synthetic "cli config" target. The token is masked for display.
func (s *Session) ConfigPayload() map[string]any {
	return map[string]any{
		"netbox_url":    s.BaseURL,
		"token_present": s.Token != "",
		"token_masked":  netbox.MaskToken(s.Token),
		"timeout":       s.Timeout.Seconds(),
		"insecure":      s.Insecure,
		"format":        string(s.Format),
	}
}

// statusVersion extracts the reported NetBox version from a status payload.
// Old releases used an underscored key.
func statusVersion(payload any) string {
	object, ok := payload.(map[string]any)
	if !ok {
		return ""
	}

	if version, ok := object["netbox-version"].(string); ok && version != "" {
		return version
	}

	version, _ := object["netbox_version"].(string)

	return version
}

// renderStatus shows the highlighted version line for pretty output when no
// selector was given, falling back to the generic payload path otherwise.
func renderStatus(session *Session, payload any, selector string) error {
	if selector == "" {
		if version := statusVersion(payload); version != "" {
			if session.Renderer().StatusLine(os.Stdout, version) {
				return nil
			}
		}
	}

	return session.RenderSelected(payload, selector)
}
