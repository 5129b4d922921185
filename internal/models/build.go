package models

type BuildInformation struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInformation) VersionString() string {
	if b.Version != "latest" {
		return b.Version
	}
	const commitShortHashLength = 7
	if len(b.Commit) < commitShortHashLength || !isHexadecimal(b.Commit) {
		return "latest"
	}
	return b.Version + "-" + b.Commit[:commitShortHashLength]
}

func isHexadecimal(s string) bool {
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'f':
		default:
			return false
		}
	}
	return true
}

func (b BuildInformation) String() string {
	return "version " + b.VersionString() + " built on " + b.Date + " (commit " + b.Commit + ")"
}
