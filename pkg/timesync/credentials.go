package timesync

import (
	"fmt"
	"os"
	"strings"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
	"github.com/kwgt/powerlog/pkg/common/validation"
)

// WPA2 limits for access point credentials.
const (
	MaxSSIDLen     = 32
	MaxPasswordLen = 64
)

// Credentials holds the access point join parameters read from the
// credentials file.
type Credentials struct {
	SSID     string
	Password string
}

// LoadCredentials reads an access point credentials file: first line SSID,
// second line password. Trailing carriage returns are stripped so files
// written on other systems load cleanly.
func LoadCredentials(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: read credentials %s: %v", plerrors.ErrResource, path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return Credentials{}, plerrors.NewValidationError(
			"timesync", "credentials", path, "file must hold SSID and password lines").
			WithHint("write the SSID on line 1 and the password on line 2")
	}

	creds := Credentials{
		SSID:     strings.TrimSpace(lines[0]),
		Password: strings.TrimSpace(lines[1]),
	}

	if creds.SSID == "" {
		return Credentials{}, plerrors.NewValidationError(
			"timesync", "ssid", "", "SSID must not be empty")
	}
	if err := validation.ValidateMaxLen("timesync", "ssid", creds.SSID, MaxSSIDLen); err != nil {
		return Credentials{}, err
	}
	if err := validation.ValidateMaxLen("timesync", "password", creds.Password, MaxPasswordLen); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}
