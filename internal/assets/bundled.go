package assets

import "embed"

// StampImage is the logical name of the bundled signature stamp rendered in
// the footer of branded invoices.
const StampImage = "signature-stamp.png"

//go:embed bundled
var bundledFS embed.FS

// Bundled returns a deploy-time embedded asset by logical name. The second
// return is false when the resource is absent or unreadable; callers degrade
// to a blank signature line in that case.
func Bundled(name string) ([]byte, bool) {
	data, err := bundledFS.ReadFile("bundled/" + name)
	if err != nil {
		return nil, false
	}
	return data, true
}
