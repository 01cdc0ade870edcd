package api

import (
	"fmt"
	"strconv"
	"strings"
)

// accountNamePrefix is the wire form of an account id: "Account" followed by
// the decimal id. The synthetic name exists only at the API boundary;
// everything below the handlers passes the numeric id.
const accountNamePrefix = "Account"

// FormatAccountName renders an account id in its wire form.
func FormatAccountName(id int) string {
	return fmt.Sprintf("%s%d", accountNamePrefix, id)
}

// ParseAccountName extracts the numeric id from a wire-form account name.
func ParseAccountName(name string) (int, error) {
	rest, ok := strings.CutPrefix(name, accountNamePrefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("invalid account name %q", name)
	}

	id, err := strconv.Atoi(rest)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid account name %q", name)
	}

	return id, nil
}
